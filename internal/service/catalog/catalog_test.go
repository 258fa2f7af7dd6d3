package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/ougirez/eracalc/internal/domain"
	"github.com/ougirez/eracalc/internal/pkg/constants"
	"github.com/shopspring/decimal"
)

func testSnapshot() *Snapshot {
	market := domain.MarketCatalog{
		OffMarket: []domain.Resource{
			{Identificator: "iron", Name: "Iron", CountryID: 1, Price: domain.FlatPrice(decimal.NewFromInt(10))},
			{Identificator: "salt", Name: "Salt", CountryID: 3, Price: domain.FlatPrice(decimal.NewFromInt(6))},
		},
		ToMarket: []domain.Resource{
			{Identificator: "wood", Name: "Wood", CountryID: 2, Price: domain.FlatPrice(decimal.NewFromInt(3))},
			{Identificator: "wood", Name: "Timber", Country: &domain.CountryRef{ID: 1}, Price: domain.FlatPrice(decimal.NewFromInt(2))},
		},
	}
	countries := []domain.Country{
		{ID: 2, Name: "Sweden", Relations: 1},
		{ID: 1, Name: "Hansa", Relations: 2},
	}
	plants := []domain.PlantLevel{
		{ID: 1, Name: "Sawmill", Level: 1},
		{ID: 2, Name: "Smithy", Level: 1},
		{ID: 3, Name: "Sawmill", Level: 2},
	}
	return NewSnapshot(market, countries, plants)
}

func TestSnapshotLookups(t *testing.T) {
	snap := testSnapshot()

	countries := snap.Countries()
	if len(countries) != 2 || countries[0].ID != 1 {
		t.Errorf("Countries not sorted by id: %+v", countries)
	}

	if _, err := snap.Country(9); !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("Country(9) err = %v", err)
	}

	r, err := snap.CountryResource(domain.SideSell, "wood", 1)
	if err != nil || r.Name != "Timber" {
		t.Errorf("CountryResource(sell, wood, 1) = %+v, %v", r, err)
	}
	if _, err := snap.CountryResource(domain.SideBuy, "wood", 1); !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("wood is not sold by country 1, err = %v", err)
	}

	r, err = snap.FindResource("wood", 1)
	if err != nil || r.Name != "Timber" {
		t.Errorf("FindResource prefers exact country, got %+v, %v", r, err)
	}
	r, err = snap.FindResource("salt", 1)
	if err != nil || r.OwnerID() != 3 {
		t.Errorf("FindResource falls back to any country, got %+v, %v", r, err)
	}

	if got := snap.ResourceName("gold", "Gold"); got != "Gold" {
		t.Errorf("ResourceName fallback = %q", got)
	}
	if got := snap.ResourceName("iron", "x"); got != "Iron" {
		t.Errorf("ResourceName(iron) = %q", got)
	}
}

func TestSnapshotPlants(t *testing.T) {
	snap := testSnapshot()

	if got := snap.PlantTypes(); !reflect.DeepEqual(got, []string{"Sawmill", "Smithy"}) {
		t.Errorf("PlantTypes = %v", got)
	}
	if got := snap.PlantsByType("Sawmill"); len(got) != 2 {
		t.Errorf("PlantsByType(Sawmill) = %d plants", len(got))
	}
	if _, err := snap.PlantLevel(42); !errors.Is(err, constants.ErrNotFound) {
		t.Errorf("PlantLevel(42) err = %v", err)
	}
}

func TestSnapshotIsolatedFromInput(t *testing.T) {
	market := domain.MarketCatalog{OffMarket: []domain.Resource{{Identificator: "iron", CountryID: 1}}}
	snap := NewSnapshot(market, nil, nil)

	market.OffMarket[0].Identificator = "changed"

	if snap.Market().OffMarket[0].Identificator != "iron" {
		t.Error("snapshot shares backing array with caller")
	}
}

type fakeSource struct {
	calls   atomic.Int32
	fail    error
	cleared atomic.Bool
}

func (f *fakeSource) LoadMarket(context.Context) (domain.MarketCatalog, error) {
	f.calls.Add(1)
	if f.fail != nil {
		return domain.MarketCatalog{}, f.fail
	}
	return domain.MarketCatalog{ToMarket: []domain.Resource{{Identificator: "wood", CountryID: 1}}}, nil
}

func (f *fakeSource) LoadCountries(context.Context) ([]domain.Country, error) {
	return []domain.Country{{ID: 1, Name: "Hansa"}}, nil
}

func (f *fakeSource) LoadPlantLevels(context.Context) ([]domain.PlantLevel, error) {
	return []domain.PlantLevel{{ID: 1, Name: "Sawmill"}}, nil
}

func (f *fakeSource) Invalidate() {
	f.cleared.Store(true)
}

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	source := &fakeSource{}
	registry := NewRegistry(source)

	if _, err := registry.Snapshot(); !errors.Is(err, constants.ErrCatalogNotLoaded) {
		t.Fatalf("empty registry err = %v", err)
	}

	loaded, err := registry.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	current, err := registry.Snapshot()
	if err != nil || current != loaded {
		t.Fatalf("Snapshot after Load = %p, %v", current, err)
	}
	if len(current.Countries()) != 1 || len(current.PlantLevels()) != 1 {
		t.Errorf("unexpected snapshot contents")
	}

	source.fail = errors.New("boom")
	if _, err := registry.Reload(ctx); err == nil {
		t.Fatal("Reload with failing source succeeded")
	}
	if !source.cleared.Load() {
		t.Error("Reload did not invalidate the source cache")
	}
	if still, _ := registry.Snapshot(); still != loaded {
		t.Error("failed reload replaced the snapshot")
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		fileMarket: `
off_market:
  - identificator: iron
    name: Iron
    country_id: 1
    price: { 0: "14", 2: "10" }
to_market:
  - identificator: wood
    name: Wood
    country_id: 1
    price: "2"
`,
		fileCountries: `
- id: 1
  name: Hansa
  relations: 2
  embargo: 1
`,
		filePlantLevels: `
- id: 1
  name: Sawmill
  level: 1
  tech_schools_open: true
  formulas:
    - from: [{ identificator: wood, count: 2 }]
      to: [{ identificator: plank, count: 1 }]
      max_product: [{ identificator: plank, count: 10 }]
`,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	snap, err := NewRegistry(NewFileSource(dir)).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	country, err := snap.Country(1)
	if err != nil || country.Relations != 2 || country.Embargo != 1 {
		t.Errorf("Country(1) = %+v, %v", country, err)
	}

	iron, err := snap.CountryResource(domain.SideBuy, "iron", 1)
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := iron.Price.Resolve(2); !ok || !v.Equal(decimal.NewFromInt(10)) {
		t.Errorf("iron price at 2 = %s, %v", v, ok)
	}

	plant, err := snap.PlantLevel(1)
	if err != nil || len(plant.Formulas) != 1 || !plant.TechSchoolsOpen {
		t.Errorf("PlantLevel(1) = %+v, %v", plant, err)
	}
}

func TestFileSourceMissingDir(t *testing.T) {
	_, err := NewRegistry(NewFileSource(filepath.Join(t.TempDir(), "absent"))).Load(context.Background())
	if err == nil {
		t.Error("Load from missing directory succeeded")
	}
}
