package caravan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ougirez/eracalc/internal/domain"
	"github.com/ougirez/eracalc/internal/domain/dto"
	"github.com/ougirez/eracalc/internal/pkg/constants"
	"github.com/ougirez/eracalc/internal/pkg/logger"
	"github.com/ougirez/eracalc/internal/pkg/store"
	"github.com/ougirez/eracalc/internal/service/catalog"
)

type Service struct {
	registry *catalog.Registry
	engine   *Engine
	journal  store.CaravanStore
}

// NewCaravanService builds the service; journal may be nil, which disables
// Send and the history lookups.
func NewCaravanService(registry *catalog.Registry, journal store.CaravanStore) *Service {
	return &Service{registry: registry, engine: NewEngine(), journal: journal}
}

func (s *Service) Calculate(ctx context.Context, req *dto.CaravanRequest) (*domain.Settlement, error) {
	snap, err := s.registry.Snapshot()
	if err != nil {
		return nil, err
	}

	settlement, err := s.engine.SettleCaravan(ctx, snap, req.CountryID, req.ResPlSells, req.ResPlBuys)
	if err != nil {
		return nil, fmt.Errorf("SettleCaravan: %w", err)
	}

	return settlement, nil
}

// Eligible returns the part of list the country trades on side.
func (s *Service) Eligible(ctx context.Context, countryID int64, list []domain.ResourceCount, side domain.TradeSide) ([]domain.ResourceCount, error) {
	if countryID <= 0 {
		return nil, fmt.Errorf("country_id must be positive: %w", constants.ErrInvalidArgument)
	}

	snap, err := s.registry.Snapshot()
	if err != nil {
		return nil, err
	}

	return s.engine.CountryFilter(snap, countryID, list, side), nil
}

// Send settles the caravan and records it in the journal.
func (s *Service) Send(ctx context.Context, req *dto.CaravanRequest) (*domain.Settlement, error) {
	if s.journal == nil {
		return nil, constants.ErrJournalDisabled
	}

	settlement, err := s.Calculate(ctx, req)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	createdAt := time.Now().UTC()
	settlement.ID = &id
	settlement.CreatedAt = &createdAt

	record := &domain.CaravanRecord{
		ID:        id,
		CountryID: req.CountryID,
		Sells:     req.ResPlSells,
		Buys:      req.ResPlBuys,
		Result:    *settlement,
		CreatedAt: createdAt,
	}
	if err := s.journal.SaveCaravan(ctx, record); err != nil {
		logger.Errorf(ctx, "SaveCaravan: %s", err.Error())
		return nil, fmt.Errorf("store.SaveCaravan: %w", err)
	}

	logger.Infof(ctx, "caravan %s to country %d settled, gold %d", id, req.CountryID, settlement.Gold())

	return settlement, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.CaravanRecord, error) {
	if s.journal == nil {
		return nil, constants.ErrJournalDisabled
	}

	record, err := s.journal.GetCaravan(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("store.GetCaravan: %w", err)
	}

	return record, nil
}

func (s *Service) List(ctx context.Context, opts store.ListCaravansOpts) ([]*domain.CaravanRecord, error) {
	if s.journal == nil {
		return nil, constants.ErrJournalDisabled
	}

	records, err := s.journal.ListCaravans(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("store.ListCaravans: %w", err)
	}

	return records, nil
}
