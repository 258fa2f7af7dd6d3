package turnover

import (
	"context"
	"fmt"

	"github.com/ougirez/eracalc/internal/domain"
	"github.com/ougirez/eracalc/internal/pkg/logger"
)

type Backend interface {
	TradeTurnovers(ctx context.Context) ([]domain.TradeTurnover, error)
	TradeLevels(ctx context.Context, countryIDs []int64) ([]domain.TradeLevelsEntry, error)
}

type Service struct {
	backend Backend
}

func NewTurnoverService(backend Backend) *Service {
	return &Service{backend: backend}
}

// List returns every country's turnover annotated with its trade level.
// Missing level data leaves the row at zero progress instead of failing.
func (s *Service) List(ctx context.Context) ([]domain.TradeTurnoverRow, error) {
	turnovers, err := s.backend.TradeTurnovers(ctx)
	if err != nil {
		return nil, fmt.Errorf("backend.TradeTurnovers: %w", err)
	}

	ids := make([]int64, 0, len(turnovers))
	for _, t := range turnovers {
		ids = append(ids, t.CountryID)
	}

	levels := make(map[int64]domain.TradeLevelsEntry, len(ids))
	entries, err := s.backend.TradeLevels(ctx, ids)
	if err != nil {
		logger.Warnf(ctx, "trade levels unavailable: %s", err.Error())
	}
	for _, e := range entries {
		levels[e.CountryID] = e
	}

	rows := make([]domain.TradeTurnoverRow, 0, len(turnovers))
	for _, t := range turnovers {
		var amount int64
		if t.TradeTurnover != nil {
			amount = *t.TradeTurnover
		}
		if t.ShortName == "" {
			t.ShortName = t.Name
		}

		entry := levels[t.CountryID]
		rows = append(rows, domain.TradeTurnoverRow{
			TradeTurnover:   t,
			Formatted:       FormatTurnover(amount),
			LevelName:       LevelName(entry.Level, entry.Thresholds),
			ProgressPercent: ProgressPercent(entry.Level, entry.Thresholds, amount),
		})
	}

	return rows, nil
}
