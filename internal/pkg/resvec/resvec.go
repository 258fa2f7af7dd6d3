// Package resvec implements arithmetic over resource vectors: identifier-keyed
// quantity lists. Every function returns a fresh slice and leaves its
// arguments untouched.
package resvec

import (
	"github.com/ougirez/eracalc/internal/domain"
	"github.com/shopspring/decimal"
)

type Vector = []domain.ResourceCount

func Clone(v Vector) Vector {
	if v == nil {
		return nil
	}
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

func index(v Vector, identificator string) int {
	for i := range v {
		if v[i].Identificator == identificator {
			return i
		}
	}
	return -1
}

// Count returns the quantity of identificator in v and whether it is present.
func Count(v Vector, identificator string) (int64, bool) {
	if i := index(v, identificator); i >= 0 {
		return v[i].Count, true
	}
	return 0, false
}

// Normalize merges entries sharing an identifier. Order of first appearance
// is kept, as is the first non-empty name.
func Normalize(v Vector) Vector {
	out := make(Vector, 0, len(v))
	for _, r := range v {
		if i := index(out, r.Identificator); i >= 0 {
			out[i].Count += r.Count
			if out[i].Name == "" {
				out[i].Name = r.Name
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// Sum adds sign*b to a, merging by identifier. Identifiers missing from a are
// appended in b's order.
func Sum(a, b Vector, sign int64) Vector {
	out := Normalize(a)
	for _, r := range b {
		if i := index(out, r.Identificator); i >= 0 {
			out[i].Count += r.Count * sign
			if out[i].Name == "" {
				out[i].Name = r.Name
			}
			continue
		}
		r.Count *= sign
		out = append(out, r)
	}
	return out
}

// Merge sums any number of vectors.
func Merge(vs ...Vector) Vector {
	out := Vector{}
	for _, v := range vs {
		out = Sum(out, v, 1)
	}
	return out
}

func Scale(v Vector, n int64) Vector {
	out := Clone(v)
	for i := range out {
		out[i].Count *= n
	}
	return out
}

// ScaleDecimal multiplies every count by k and truncates toward zero.
func ScaleDecimal(v Vector, k decimal.Decimal) Vector {
	out := Clone(v)
	for i := range out {
		out[i].Count = decimal.NewFromInt(out[i].Count).Mul(k).Truncate(0).IntPart()
	}
	return out
}

// Fits reports whether every entry of v is covered by the same identifier in
// limit. An identifier absent from limit never fits.
func Fits(v, limit Vector) bool {
	for _, r := range v {
		have, ok := Count(limit, r.Identificator)
		if !ok || r.Count > have {
			return false
		}
	}
	return true
}

// HasPositive reports whether any entry carries a count above zero.
func HasPositive(v Vector) bool {
	for _, r := range v {
		if r.Count > 0 {
			return true
		}
	}
	return false
}
