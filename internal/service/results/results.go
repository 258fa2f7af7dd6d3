package results

import (
	"context"
	"fmt"

	"github.com/ougirez/eracalc/internal/domain"
	"github.com/ougirez/eracalc/internal/pkg/constants"
	"github.com/ougirez/eracalc/internal/pkg/logger"
)

const ScreenAllMerchBoyarWithCapital = "allMerchBoyarWithCapital"

var placeMap = map[string]int{
	"firstMerch":                  1,
	"secondMerch":                 2,
	"thirdMerch":                  3,
	"firstMerchBoyar":             1,
	"secondMerchBoyar":            2,
	"thirdMerchBoyar":             3,
	"firstMerchBoyarWithCapital":  1,
	"secondMerchBoyarWithCapital": 2,
	"thirdMerchBoyarWithCapital":  3,
	"firstNoble":                  1,
	"secondNoble":                 2,
	"thirdNoble":                  3,
}

// Place maps a screen name to the podium place it shows, 0 for overview screens.
func Place(screen string) int {
	return placeMap[screen]
}

func FilterMerchants(list []domain.MerchantResult, screen string) []domain.MerchantResult {
	place := Place(screen)
	if screen == ScreenAllMerchBoyarWithCapital || place == 0 {
		return list
	}

	res := make([]domain.MerchantResult, 0)
	for _, m := range list {
		if m.Place == place {
			res = append(res, m)
		}
	}
	return res
}

func FilterNobles(list []domain.NobleResult, screen string) []domain.NobleResult {
	place := Place(screen)
	if place == 0 {
		return list
	}

	res := make([]domain.NobleResult, 0)
	for _, n := range list {
		if n.Place == place {
			res = append(res, n)
		}
	}
	return res
}

type Backend interface {
	ScreenBundle(ctx context.Context) (*domain.ScreenBundle, error)
	ChangeResultsDisplay(ctx context.Context, display string) error
}

type Service struct {
	backend Backend
}

func NewResultsService(backend Backend) *Service {
	return &Service{backend: backend}
}

// Board returns the end-game results as the given screen shows them. An empty
// screen means the one currently on display.
func (s *Service) Board(ctx context.Context, screen string) (*domain.ScreenBundle, error) {
	bundle, err := s.backend.ScreenBundle(ctx)
	if err != nil {
		return nil, fmt.Errorf("backend.ScreenBundle: %w", err)
	}

	if screen == "" {
		screen = bundle.Display
	}

	return &domain.ScreenBundle{
		Display:   screen,
		Merchants: FilterMerchants(bundle.Merchants, screen),
		Nobles:    FilterNobles(bundle.Nobles, screen),
	}, nil
}

func (s *Service) SetDisplay(ctx context.Context, screen string) error {
	if screen == "" {
		return fmt.Errorf("empty screen: %w", constants.ErrInvalidArgument)
	}

	if err := s.backend.ChangeResultsDisplay(ctx, screen); err != nil {
		return fmt.Errorf("backend.ChangeResultsDisplay: %w", err)
	}

	logger.Infof(ctx, "results display switched to %s", screen)
	return nil
}
