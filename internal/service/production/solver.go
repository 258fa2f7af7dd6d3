package production

import (
	"context"
	"fmt"

	"github.com/ougirez/eracalc/internal/domain"
	"github.com/ougirez/eracalc/internal/domain/dto"
	"github.com/ougirez/eracalc/internal/pkg/constants"
	"github.com/ougirez/eracalc/internal/pkg/logger"
	"github.com/ougirez/eracalc/internal/pkg/resvec"
	"github.com/ougirez/eracalc/internal/service/catalog"
	"github.com/shopspring/decimal"
)

// Solver feeds requests through plant formulas. It holds no state.
type Solver struct{}

func NewSolver() *Solver {
	return &Solver{}
}

// CountRequest returns how many whole times formula can fire against the
// residual request. Copies of the requested side are added one at a time
// while they stay within residual and the accumulated output stays within
// max_product.
func (s *Solver) CountRequest(formula *domain.Formula, residual resvec.Vector, way domain.Way) int64 {
	// without positive output nothing bounds the scan
	if !resvec.HasPositive(formula.To) {
		return 0
	}

	part := formula.Side(way)
	bucket := resvec.Clone(part)
	output := resvec.Clone(formula.To)

	var n int64
	for resvec.Fits(bucket, residual) && resvec.Fits(output, formula.MaxProduct) {
		n++
		bucket = resvec.Sum(bucket, part, 1)
		output = resvec.Sum(output, formula.To, 1)
	}

	return n
}

// NormalizeRequest truncates counts to whole units and clamps negatives to
// zero. Requests for finished goods are stated after the output modifier,
// so with WayTo they are divided by it and rounded up.
func (s *Solver) NormalizeRequest(plant *domain.PlantLevel, request []dto.ProductionItem, way domain.Way) resvec.Vector {
	modifier := plant.OutputModifier()

	res := make(resvec.Vector, 0, len(request))
	for _, item := range request {
		count := item.Count.Truncate(0)
		if count.IsNegative() {
			count = decimal.Zero
		}
		if way == domain.WayTo {
			count = count.Div(modifier).Ceil()
		}

		res = append(res, domain.ResourceCount{
			Identificator: item.Identificator,
			Name:          plant.ResourceName(item.Identificator),
			Count:         count.IntPart(),
		})
	}

	return resvec.Normalize(res)
}

// Convert runs the request through every formula of the plant in order.
// Each formula consumes from what the previous ones left; the residual may
// go negative when a formula overshoots.
func (s *Solver) Convert(
	ctx context.Context,
	snap *catalog.Snapshot,
	plantLevelID int64,
	request []dto.ProductionItem,
	way domain.Way,
) (*domain.Conversion, error) {
	if way != domain.WayFrom && way != domain.WayTo {
		return nil, fmt.Errorf("way %q: %w", way, constants.ErrInvalidArgument)
	}
	if snap == nil {
		return nil, constants.ErrCatalogNotLoaded
	}

	plant, err := snap.PlantLevel(plantLevelID)
	if err != nil {
		return nil, err
	}

	ctx = logger.WithFields(ctx, "plant_level_id", plantLevelID, "way", string(way))

	residual := s.NormalizeRequest(plant, request, way)
	totalFrom := resvec.Vector{}
	totalTo := resvec.Vector{}

	for i := range plant.Formulas {
		formula := &plant.Formulas[i]

		n := s.CountRequest(formula, residual, way)
		from := resvec.Scale(formula.From, n)
		to := resvec.Scale(formula.To, n)

		if way == domain.WayFrom {
			residual = resvec.Sum(residual, from, -1)
		} else {
			residual = resvec.Sum(residual, to, -1)
		}

		totalFrom = resvec.Sum(totalFrom, from, 1)
		totalTo = resvec.Sum(totalTo, to, 1)

		logger.Debugf(ctx, "production: formula %d fired %d times", i, n)
	}

	totalTo = resvec.ScaleDecimal(totalTo, plant.OutputModifier())

	return &domain.Conversion{
		PlantLevelID: plantLevelID,
		Way:          way,
		From:         withNames(plant, totalFrom),
		To:           withNames(plant, totalTo),
		Change:       withNames(plant, residual),
	}, nil
}

func withNames(plant *domain.PlantLevel, v resvec.Vector) resvec.Vector {
	for i := range v {
		if v[i].Name == "" {
			v[i].Name = plant.ResourceName(v[i].Identificator)
		}
	}
	return v
}
