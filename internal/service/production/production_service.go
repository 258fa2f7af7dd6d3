package production

import (
	"context"
	"fmt"

	"github.com/ougirez/eracalc/internal/domain"
	"github.com/ougirez/eracalc/internal/domain/dto"
	"github.com/ougirez/eracalc/internal/pkg/constants"
	"github.com/ougirez/eracalc/internal/service/catalog"
)

type Service struct {
	registry *catalog.Registry
	solver   *Solver
}

func NewProductionService(registry *catalog.Registry) *Service {
	return &Service{registry: registry, solver: NewSolver()}
}

func (s *Service) Convert(ctx context.Context, req *dto.ConvertRequest) (*domain.Conversion, error) {
	way, err := domain.ParseWay(req.Way)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), constants.ErrInvalidArgument)
	}

	snap, err := s.registry.Snapshot()
	if err != nil {
		return nil, err
	}

	conversion, err := s.solver.Convert(ctx, snap, req.PlantLevelID, req.Request, way)
	if err != nil {
		return nil, fmt.Errorf("solver.Convert: %w", err)
	}

	return conversion, nil
}

func (s *Service) PlantTypes(ctx context.Context) ([]string, error) {
	snap, err := s.registry.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.PlantTypes(), nil
}

// ListPlants returns every plant level, or only those named plantType.
func (s *Service) ListPlants(ctx context.Context, plantType string) ([]domain.PlantLevel, error) {
	snap, err := s.registry.Snapshot()
	if err != nil {
		return nil, err
	}
	if plantType == "" {
		return snap.PlantLevels(), nil
	}
	return snap.PlantsByType(plantType), nil
}
