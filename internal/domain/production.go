package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var schoolsOutputModifier = decimal.NewFromFloat(1.5)

type Way string

const (
	WayFrom Way = "from"
	WayTo   Way = "to"
)

func ParseWay(s string) (Way, error) {
	switch Way(strings.ToLower(strings.TrimSpace(s))) {
	case WayFrom, "":
		return WayFrom, nil
	case WayTo:
		return WayTo, nil
	default:
		return "", fmt.Errorf("unknown way %q", s)
	}
}

type Formula struct {
	From       []ResourceCount `json:"from" yaml:"from"`
	To         []ResourceCount `json:"to" yaml:"to"`
	MaxProduct []ResourceCount `json:"max_product" yaml:"max_product"`
}

// Side returns the part of the formula a request in the given way is stated in.
func (f *Formula) Side(way Way) []ResourceCount {
	if way == WayTo {
		return f.To
	}
	return f.From
}

type PlantLevel struct {
	ID              int64     `json:"id" yaml:"id" db:"id"`
	Name            string    `json:"name" yaml:"name" db:"name"`
	Level           int       `json:"level" yaml:"level" db:"level"`
	TechSchoolsOpen bool      `json:"tech_schools_open" yaml:"tech_schools_open" db:"tech_schools_open"`
	Formulas        []Formula `json:"formulas" yaml:"formulas" db:"formulas"`
}

// OutputModifier is applied to finished goods only.
func (p *PlantLevel) OutputModifier() decimal.Decimal {
	if p.TechSchoolsOpen {
		return schoolsOutputModifier
	}
	return decimal.NewFromInt(1)
}

// ResourceName finds a display name among the plant's formulas.
func (p *PlantLevel) ResourceName(identificator string) string {
	for _, f := range p.Formulas {
		for _, side := range [][]ResourceCount{f.From, f.To} {
			for _, r := range side {
				if r.Identificator == identificator && r.Name != "" {
					return r.Name
				}
			}
		}
	}
	return identificator
}

type Conversion struct {
	PlantLevelID int64           `json:"plant_level_id"`
	Way          Way             `json:"way"`
	From         []ResourceCount `json:"from"`
	// To already carries the output modifier, truncated toward zero:
	// one plank at 1.5 is reported as 1.
	To           []ResourceCount `json:"to"`
	Change       []ResourceCount `json:"change"`
}
