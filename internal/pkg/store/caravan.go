package store

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/ougirez/eracalc/internal/domain"
	"github.com/ougirez/eracalc/internal/pkg/logger"
	"github.com/ougirez/eracalc/internal/pkg/store/xpgx"
)

const defaultCaravansLimit = 50

type ListCaravansOpts struct {
	CountryID int64
	Limit     uint64
}

var caravanColumns = []string{"id", "country_id", "sells", "buys", "result", "created_at"}

func saveCaravanQuery(record *domain.CaravanRecord) (sq.InsertBuilder, error) {
	query := builder().Insert(tableCaravanSettlements).
		Columns(caravanColumns...)

	sellsJSON, err := json.Marshal(record.Sells)
	if err != nil {
		return query, fmt.Errorf("failed to marshal sells: %w", err)
	}
	buysJSON, err := json.Marshal(record.Buys)
	if err != nil {
		return query, fmt.Errorf("failed to marshal buys: %w", err)
	}
	resultJSON, err := json.Marshal(record.Result)
	if err != nil {
		return query, fmt.Errorf("failed to marshal result: %w", err)
	}

	return query.Values(record.ID, record.CountryID, sellsJSON, buysJSON, resultJSON, record.CreatedAt), nil
}

func (s *store) SaveCaravan(ctx context.Context, record *domain.CaravanRecord) error {
	query, err := saveCaravanQuery(record)
	if err != nil {
		return err
	}

	if _, err := s.pool.Execx(ctx, query); err != nil {
		logger.Error(ctx, err.Error())
		return err
	}

	return nil
}

func (s *store) GetCaravan(ctx context.Context, id uuid.UUID) (*domain.CaravanRecord, error) {
	query := builder().Select(caravanColumns...).
		From(tableCaravanSettlements).
		Where(sq.Eq{"id": id})

	selected, err := xpgx.Getx[domain.CaravanRecord](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func listCaravansQuery(opts ListCaravansOpts) sq.SelectBuilder {
	limit := opts.Limit
	if limit == 0 {
		limit = defaultCaravansLimit
	}

	query := builder().Select(caravanColumns...).
		From(tableCaravanSettlements).
		OrderBy("created_at desc").
		Limit(limit)

	if opts.CountryID > 0 {
		query = query.Where(sq.Eq{"country_id": opts.CountryID})
	}

	return query
}

func (s *store) ListCaravans(ctx context.Context, opts ListCaravansOpts) ([]*domain.CaravanRecord, error) {
	selected, err := xpgx.Selectx[domain.CaravanRecord](ctx, s.pool, listCaravansQuery(opts))
	if err != nil {
		logger.Error(ctx, err.Error())
		return nil, err
	}

	return selected, nil
}
