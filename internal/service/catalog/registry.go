package catalog

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/ougirez/eracalc/internal/domain"
	"github.com/ougirez/eracalc/internal/pkg/constants"
	"github.com/ougirez/eracalc/internal/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Source delivers reference data. Implemented by the Postgres store, the
// game backend client and FileSource.
type Source interface {
	LoadMarket(ctx context.Context) (domain.MarketCatalog, error)
	LoadCountries(ctx context.Context) ([]domain.Country, error)
	LoadPlantLevels(ctx context.Context) ([]domain.PlantLevel, error)
}

// Registry owns the current snapshot. It is passed explicitly to whoever
// needs reference data; there is no package-level instance.
type Registry struct {
	source  Source
	current atomic.Pointer[Snapshot]
}

func NewRegistry(source Source) *Registry {
	return &Registry{source: source}
}

// Load fetches every dataset concurrently and swaps the snapshot in one step.
// On error the previous snapshot stays in place.
func (r *Registry) Load(ctx context.Context) (*Snapshot, error) {
	if r.source == nil {
		return nil, fmt.Errorf("registry without source: %w", constants.ErrCatalogNotLoaded)
	}

	var (
		market      domain.MarketCatalog
		countries   []domain.Country
		plantLevels []domain.PlantLevel
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		market, err = r.source.LoadMarket(egCtx)
		if err != nil {
			return fmt.Errorf("LoadMarket: %w", err)
		}
		return nil
	})
	eg.Go(func() (err error) {
		countries, err = r.source.LoadCountries(egCtx)
		if err != nil {
			return fmt.Errorf("LoadCountries: %w", err)
		}
		return nil
	})
	eg.Go(func() (err error) {
		plantLevels, err = r.source.LoadPlantLevels(egCtx)
		if err != nil {
			return fmt.Errorf("LoadPlantLevels: %w", err)
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		logger.Errorf(ctx, "catalog load: %s", err.Error())
		return nil, err
	}

	snap := NewSnapshot(market, countries, plantLevels)
	r.current.Store(snap)

	logger.Infof(ctx, "catalog loaded: %d off-market, %d to-market, %d countries, %d plant levels",
		len(market.OffMarket), len(market.ToMarket), len(countries), len(plantLevels))

	return snap, nil
}

type invalidator interface {
	Invalidate()
}

// Reload is Load preceded by dropping whatever response cache the source keeps.
func (r *Registry) Reload(ctx context.Context) (*Snapshot, error) {
	if inv, ok := r.source.(invalidator); ok {
		inv.Invalidate()
	}
	return r.Load(ctx)
}

// Set installs a snapshot built elsewhere.
func (r *Registry) Set(snap *Snapshot) {
	r.current.Store(snap)
}

func (r *Registry) Snapshot() (*Snapshot, error) {
	snap := r.current.Load()
	if snap == nil {
		return nil, constants.ErrCatalogNotLoaded
	}
	return snap, nil
}
