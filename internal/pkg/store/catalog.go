package store

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/ougirez/eracalc/internal/domain"
	"github.com/ougirez/eracalc/internal/pkg/logger"
	"github.com/ougirez/eracalc/internal/pkg/store/xpgx"
)

var (
	resourceColumns   = []string{"id", "identificator", "name", "country_id", "coalesce(price, 'null'::jsonb) as price"}
	countryColumns    = []string{"id", "name", "short_name", "relations", "embargo"}
	plantLevelColumns = []string{"id", "name", "level", "tech_schools_open", "formulas"}
)

func listResourcesQuery(side string) sq.SelectBuilder {
	return builder().Select(resourceColumns...).
		From(tableResources).
		Where(sq.Eq{"side": side}).
		OrderBy("country_id, id")
}

func (s *store) LoadMarket(ctx context.Context) (domain.MarketCatalog, error) {
	var market domain.MarketCatalog

	offMarket, err := xpgx.Selectx[domain.Resource](ctx, s.pool, listResourcesQuery(sideOffMarket))
	if err != nil {
		logger.Errorf(ctx, "select off_market: %s", err.Error())
		return market, fmt.Errorf("select off_market: %w", err)
	}

	toMarket, err := xpgx.Selectx[domain.Resource](ctx, s.pool, listResourcesQuery(sideToMarket))
	if err != nil {
		logger.Errorf(ctx, "select to_market: %s", err.Error())
		return market, fmt.Errorf("select to_market: %w", err)
	}

	market.OffMarket = deref(offMarket)
	market.ToMarket = deref(toMarket)
	return market, nil
}

func (s *store) LoadCountries(ctx context.Context) ([]domain.Country, error) {
	query := builder().Select(countryColumns...).
		From(tableCountries).
		OrderBy("id")

	selected, err := xpgx.Selectx[domain.Country](ctx, s.pool, query)
	if err != nil {
		return nil, fmt.Errorf("select countries: %w", err)
	}

	return deref(selected), nil
}

func (s *store) LoadPlantLevels(ctx context.Context) ([]domain.PlantLevel, error) {
	query := builder().Select(plantLevelColumns...).
		From(tablePlantLevels).
		OrderBy("id")

	selected, err := xpgx.Selectx[domain.PlantLevel](ctx, s.pool, query)
	if err != nil {
		return nil, fmt.Errorf("select plant_levels: %w", err)
	}

	return deref(selected), nil
}

// ImportCatalog upserts reference data, e.g. when seeding from YAML files.
// All tables are written in one transaction.
func (s *store) ImportCatalog(
	ctx context.Context,
	market domain.MarketCatalog,
	countries []domain.Country,
	plantLevels []domain.PlantLevel,
) (err error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logger.Errorf(ctx, "rollback catalog import: %s", rbErr.Error())
			}
		}
	}()

	if len(countries) > 0 {
		if _, err := xpgx.Execx(ctx, tx, upsertCountriesQuery(countries)); err != nil {
			logger.Errorf(ctx, "upsert countries: %s", err.Error())
			return fmt.Errorf("upsert countries: %w", err)
		}
	}

	for _, side := range []struct {
		name string
		list []domain.Resource
	}{
		{sideOffMarket, market.OffMarket},
		{sideToMarket, market.ToMarket},
	} {
		if len(side.list) == 0 {
			continue
		}

		query, err := upsertResourcesQuery(side.name, side.list)
		if err != nil {
			return err
		}
		if _, err := xpgx.Execx(ctx, tx, query); err != nil {
			logger.Errorf(ctx, "upsert %s: %s", side.name, err.Error())
			return fmt.Errorf("upsert %s: %w", side.name, err)
		}
	}

	if len(plantLevels) > 0 {
		query, err := upsertPlantLevelsQuery(plantLevels)
		if err != nil {
			return err
		}
		if _, err := xpgx.Execx(ctx, tx, query); err != nil {
			logger.Errorf(ctx, "upsert plant_levels: %s", err.Error())
			return fmt.Errorf("upsert plant_levels: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func upsertCountriesQuery(countries []domain.Country) sq.InsertBuilder {
	query := builder().Insert(tableCountries).
		Columns(countryColumns...)

	for _, c := range countries {
		query = query.Values(c.ID, c.Name, c.ShortName, int(c.Relations), c.Embargo)
	}

	return query.Suffix(`
on conflict (id)
do update
set
	name = excluded.name,
	short_name = excluded.short_name,
	relations = excluded.relations,
	embargo = excluded.embargo`)
}

func upsertResourcesQuery(side string, resources []domain.Resource) (sq.InsertBuilder, error) {
	query := builder().Insert(tableResources).
		Columns("identificator", "name", "country_id", "side", "price")

	for _, r := range resources {
		priceJSON, err := json.Marshal(r.Price)
		if err != nil {
			return query, fmt.Errorf("failed to marshal price of %s: %w", r.Identificator, err)
		}
		query = query.Values(r.Identificator, r.Name, r.OwnerID(), side, priceJSON)
	}

	return query.Suffix(`
on conflict (country_id, side, identificator)
do update
set
	name = excluded.name,
	price = excluded.price`), nil
}

func upsertPlantLevelsQuery(plantLevels []domain.PlantLevel) (sq.InsertBuilder, error) {
	query := builder().Insert(tablePlantLevels).
		Columns(plantLevelColumns...)

	for _, p := range plantLevels {
		formulasJSON, err := json.Marshal(p.Formulas)
		if err != nil {
			return query, fmt.Errorf("failed to marshal formulas of plant level %d: %w", p.ID, err)
		}
		query = query.Values(p.ID, p.Name, p.Level, p.TechSchoolsOpen, formulasJSON)
	}

	return query.Suffix(`
on conflict (id)
do update
set
	name = excluded.name,
	level = excluded.level,
	tech_schools_open = excluded.tech_schools_open,
	formulas = excluded.formulas`), nil
}

func deref[T any](items []*T) []T {
	res := make([]T, 0, len(items))
	for _, item := range items {
		res = append(res, *item)
	}
	return res
}
