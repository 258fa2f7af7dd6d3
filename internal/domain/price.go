package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

type PriceKind uint8

const (
	PriceNone PriceKind = iota
	PriceFlat
	PriceTiered
)

// Price is either a flat unit price or a table of unit prices keyed by
// relations level. The zero value carries no price at all.
type Price struct {
	kind   PriceKind
	flat   decimal.Decimal
	tiered map[int]decimal.Decimal
}

func FlatPrice(v decimal.Decimal) Price {
	return Price{kind: PriceFlat, flat: v}
}

func TieredPrice(byLevel map[int]decimal.Decimal) Price {
	tiers := make(map[int]decimal.Decimal, len(byLevel))
	for lvl, v := range byLevel {
		tiers[lvl] = v
	}
	return Price{kind: PriceTiered, tiered: tiers}
}

func (p Price) Kind() PriceKind {
	return p.kind
}

// Resolve returns the unit price for the given relations level. A price that
// resolves to zero or below is reported as unresolved: the market does not
// trade the item at that level.
func (p Price) Resolve(relations int) (decimal.Decimal, bool) {
	var v decimal.Decimal
	switch p.kind {
	case PriceFlat:
		v = p.flat
	case PriceTiered:
		tier, ok := p.tiered[relations]
		if !ok {
			return decimal.Zero, false
		}
		v = tier
	default:
		return decimal.Zero, false
	}

	if !v.IsPositive() {
		return decimal.Zero, false
	}
	return v, true
}

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = Price{}
		return nil
	}

	if data[0] == '{' {
		var raw map[string]decimal.Decimal
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("tiered price: %w", err)
		}

		tiers := make(map[int]decimal.Decimal, len(raw))
		for key, v := range raw {
			lvl, err := strconv.Atoi(key)
			if err != nil {
				return fmt.Errorf("tiered price: bad relations level %q", key)
			}
			tiers[lvl] = v
		}
		*p = Price{kind: PriceTiered, tiered: tiers}
		return nil
	}

	var flat decimal.Decimal
	if err := flat.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("flat price: %w", err)
	}
	*p = Price{kind: PriceFlat, flat: flat}
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case PriceFlat:
		return []byte(p.flat.String()), nil
	case PriceTiered:
		levels := make([]int, 0, len(p.tiered))
		for lvl := range p.tiered {
			levels = append(levels, lvl)
		}
		sort.Ints(levels)

		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, lvl := range levels {
			if i > 0 {
				buf.WriteByte(',')
			}
			fmt.Fprintf(&buf, "%q:%s", strconv.Itoa(lvl), p.tiered[lvl].String())
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalYAML accepts the same two shapes as JSON.
func (p *Price) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var tiers map[int]string
	if err := unmarshal(&tiers); err == nil {
		parsed := make(map[int]decimal.Decimal, len(tiers))
		for lvl, s := range tiers {
			v, err := decimal.NewFromString(s)
			if err != nil {
				return fmt.Errorf("tiered price level %d: %w", lvl, err)
			}
			parsed[lvl] = v
		}
		*p = TieredPrice(parsed)
		return nil
	}

	var s string
	if err := unmarshal(&s); err != nil {
		return fmt.Errorf("price: %w", err)
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("flat price: %w", err)
	}
	*p = FlatPrice(v)
	return nil
}
