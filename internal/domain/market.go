package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ResourceCount is one entry of a resource vector.
type ResourceCount struct {
	Identificator string `json:"identificator" yaml:"identificator" validate:"required"`
	Name          string `json:"name,omitempty" yaml:"name,omitempty"`
	Count         int64  `json:"count" yaml:"count"`
}

type CountryRef struct {
	ID int64 `json:"id" yaml:"id"`
}

// Resource is a priced market listing of one country.
type Resource struct {
	ID            int64       `json:"id,omitempty" yaml:"id,omitempty" db:"id"`
	Identificator string      `json:"identificator" yaml:"identificator" db:"identificator"`
	Name          string      `json:"name" yaml:"name" db:"name"`
	CountryID     int64       `json:"country_id,omitempty" yaml:"country_id,omitempty" db:"country_id"`
	Country       *CountryRef `json:"country,omitempty" yaml:"country,omitempty" db:"-"`
	Price         Price       `json:"price" yaml:"price" db:"price"`
}

// OwnerID returns the owning country id whichever way the listing refers to it.
func (r *Resource) OwnerID() int64 {
	if r.CountryID != 0 {
		return r.CountryID
	}
	if r.Country != nil {
		return r.Country.ID
	}
	return 0
}

// MarketCatalog holds both sides of every country's market.
// OffMarket lists what countries sell to players, ToMarket what they buy.
type MarketCatalog struct {
	OffMarket []Resource `json:"off_market" yaml:"off_market"`
	ToMarket  []Resource `json:"to_market" yaml:"to_market"`
}

// RelationLevel accepts both 2 and "2" on the wire.
type RelationLevel int

func (l *RelationLevel) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = 0
		return nil
	}

	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		s = string(data)
	}

	s = strings.TrimSpace(s)
	if s == "" {
		*l = 0
		return nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("relations level %q: %w", s, err)
	}
	*l = RelationLevel(v)
	return nil
}

type Country struct {
	ID        int64         `json:"id" yaml:"id" db:"id"`
	Name      string        `json:"name" yaml:"name" db:"name"`
	ShortName string        `json:"short_name,omitempty" yaml:"short_name,omitempty" db:"short_name"`
	Relations RelationLevel `json:"relations" yaml:"relations" db:"relations"`
	Embargo   int           `json:"embargo" yaml:"embargo" db:"embargo"`
}
