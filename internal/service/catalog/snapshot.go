package catalog

import (
	"fmt"
	"sort"
	"time"

	"github.com/ougirez/eracalc/internal/domain"
	"github.com/ougirez/eracalc/internal/pkg/constants"
)

// Snapshot is an immutable view of the reference data. Engines take one per
// calculation; a reload builds a new snapshot instead of touching this one.
type Snapshot struct {
	market      domain.MarketCatalog
	countries   map[int64]domain.Country
	plantLevels []domain.PlantLevel
	loadedAt    time.Time
}

func NewSnapshot(market domain.MarketCatalog, countries []domain.Country, plantLevels []domain.PlantLevel) *Snapshot {
	s := &Snapshot{
		market: domain.MarketCatalog{
			OffMarket: append([]domain.Resource(nil), market.OffMarket...),
			ToMarket:  append([]domain.Resource(nil), market.ToMarket...),
		},
		countries:   make(map[int64]domain.Country, len(countries)),
		plantLevels: append([]domain.PlantLevel(nil), plantLevels...),
		loadedAt:    time.Now(),
	}
	for _, c := range countries {
		s.countries[c.ID] = c
	}
	return s
}

func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}

func (s *Snapshot) Market() domain.MarketCatalog {
	return s.market
}

// Side returns the listings relevant for the player's side of a trade:
// selling goes to the country's buy list, buying comes from its sell list.
func (s *Snapshot) Side(side domain.TradeSide) []domain.Resource {
	if side == domain.SideSell {
		return s.market.ToMarket
	}
	return s.market.OffMarket
}

func (s *Snapshot) Countries() []domain.Country {
	res := make([]domain.Country, 0, len(s.countries))
	for _, c := range s.countries {
		res = append(res, c)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}

func (s *Snapshot) Country(id int64) (domain.Country, error) {
	c, ok := s.countries[id]
	if !ok {
		return domain.Country{}, fmt.Errorf("country %d: %w", id, constants.ErrNotFound)
	}
	return c, nil
}

// CountryResource finds the listing of identificator owned by countryID on
// the given side.
func (s *Snapshot) CountryResource(side domain.TradeSide, identificator string, countryID int64) (domain.Resource, error) {
	for _, r := range s.Side(side) {
		if r.Identificator == identificator && r.OwnerID() == countryID {
			return r, nil
		}
	}
	return domain.Resource{}, fmt.Errorf("resource %s of country %d: %w", identificator, countryID, constants.ErrNotFound)
}

// FindResource searches both sides, preferring a listing of countryID. With
// countryID zero any listing matches.
func (s *Snapshot) FindResource(identificator string, countryID int64) (domain.Resource, error) {
	var (
		fallback domain.Resource
		found    bool
	)
	for _, list := range [][]domain.Resource{s.market.ToMarket, s.market.OffMarket} {
		for _, r := range list {
			if r.Identificator != identificator {
				continue
			}
			if countryID == 0 || r.OwnerID() == countryID {
				return r, nil
			}
			if !found {
				fallback, found = r, true
			}
		}
	}
	if found {
		return fallback, nil
	}
	return domain.Resource{}, fmt.Errorf("resource %s: %w", identificator, constants.ErrNotFound)
}

// ResourceName returns the display name of identificator, or fallback.
func (s *Snapshot) ResourceName(identificator, fallback string) string {
	if r, err := s.FindResource(identificator, 0); err == nil && r.Name != "" {
		return r.Name
	}
	return fallback
}

func (s *Snapshot) PlantLevels() []domain.PlantLevel {
	return s.plantLevels
}

func (s *Snapshot) PlantLevel(id int64) (*domain.PlantLevel, error) {
	for i := range s.plantLevels {
		if s.plantLevels[i].ID == id {
			return &s.plantLevels[i], nil
		}
	}
	return nil, fmt.Errorf("plant level %d: %w", id, constants.ErrNotFound)
}

// PlantTypes lists distinct plant names in catalog order.
func (s *Snapshot) PlantTypes() []string {
	seen := make(map[string]struct{}, len(s.plantLevels))
	res := make([]string, 0, len(s.plantLevels))
	for _, p := range s.plantLevels {
		if _, ok := seen[p.Name]; ok {
			continue
		}
		seen[p.Name] = struct{}{}
		res = append(res, p.Name)
	}
	return res
}

func (s *Snapshot) PlantsByType(name string) []domain.PlantLevel {
	res := make([]domain.PlantLevel, 0)
	for _, p := range s.plantLevels {
		if p.Name == name {
			res = append(res, p)
		}
	}
	return res
}
