package caravan

import (
	"context"
	"fmt"
	"math"

	"github.com/ougirez/eracalc/internal/domain"
	"github.com/ougirez/eracalc/internal/pkg/constants"
	"github.com/ougirez/eracalc/internal/pkg/logger"
	"github.com/ougirez/eracalc/internal/service/catalog"
	"github.com/shopspring/decimal"
)

// LineCost is the priced outcome of one trade line. Cost is nil when the
// market has no usable price for it.
type LineCost struct {
	Identificator string `json:"identificator"`
	Count         int64  `json:"count"`
	Cost          *int64 `json:"cost"`
	Embargo       int    `json:"embargo"`
}

var (
	maxAmount = decimal.NewFromInt(math.MaxInt64)
	minAmount = decimal.NewFromInt(math.MinInt64)
)

func fitsInt64(d decimal.Decimal) bool {
	return !d.GreaterThan(maxAmount) && !d.LessThan(minAmount)
}

// Engine settles caravans against a catalog snapshot. It holds no state.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

func accepted(snap *catalog.Snapshot, countryID int64, side domain.TradeSide) map[string]struct{} {
	res := make(map[string]struct{})
	for _, r := range snap.Side(side) {
		if r.OwnerID() == countryID {
			res[r.Identificator] = struct{}{}
		}
	}
	return res
}

// CountryFilter keeps the lines whose resource the country trades on the
// given side. Unknown lines are dropped without error.
func (e *Engine) CountryFilter(snap *catalog.Snapshot, countryID int64, list []domain.ResourceCount, side domain.TradeSide) []domain.ResourceCount {
	if countryID <= 0 || len(list) == 0 {
		return []domain.ResourceCount{}
	}

	ids := accepted(snap, countryID, side)
	res := make([]domain.ResourceCount, 0, len(list))
	for _, r := range list {
		if _, ok := ids[r.Identificator]; ok {
			res = append(res, r)
		}
	}
	return res
}

// lineCost returns the rounded cost of count units of resource and the
// embargo of its owner. ok is false when the market has no usable price.
func lineCost(snap *catalog.Snapshot, count int64, resource domain.Resource) (cost decimal.Decimal, embargo int, ok bool) {
	country, err := snap.Country(resource.OwnerID())
	if err != nil {
		return decimal.Zero, 0, false
	}

	unit, ok := resource.Price.Resolve(int(country.Relations))
	if !ok {
		return decimal.Zero, country.Embargo, false
	}

	return unit.Mul(decimal.NewFromInt(count)).Round(0), country.Embargo, true
}

// CalculateCost prices count units of resource at its owner's relations level.
// Cost stays nil when the price is unusable or the amount exceeds int64.
func (e *Engine) CalculateCost(snap *catalog.Snapshot, count int64, resource domain.Resource) LineCost {
	line := LineCost{Identificator: resource.Identificator, Count: count}

	cost, embargo, ok := lineCost(snap, count, resource)
	line.Embargo = embargo
	if !ok || !fitsInt64(cost) {
		return line
	}

	amount := cost.IntPart()
	line.Cost = &amount
	return line
}

// SettleCaravan computes what the player receives for selling sells to and
// buying buys from the market of countryID. Lines the market does not trade
// or cannot price are skipped and listed in Settlement.Skipped.
func (e *Engine) SettleCaravan(
	ctx context.Context,
	snap *catalog.Snapshot,
	countryID int64,
	sells []domain.ResourceCount,
	buys []domain.ResourceCount,
) (*domain.Settlement, error) {
	if countryID <= 0 {
		return nil, fmt.Errorf("country_id must be positive, got %d: %w", countryID, constants.ErrInvalidArgument)
	}
	if snap == nil {
		return nil, constants.ErrCatalogNotLoaded
	}

	ctx = logger.WithFields(ctx, "country_id", countryID)

	settlement := &domain.Settlement{
		CountryID:   countryID,
		ResToPlayer: make([]domain.ResourceCount, 0, len(buys)+1),
	}
	if country, err := snap.Country(countryID); err == nil {
		settlement.Embargo = country.Embargo
	}

	var (
		gold     decimal.Decimal
		income   decimal.Decimal
		purchase decimal.Decimal
	)
	for _, r := range sells {
		if r.Identificator == constants.GoldIdentificator {
			gold = decimal.NewFromInt(r.Count)
			break
		}
	}

	skip := func(identificator string, side domain.TradeSide, reason domain.SkipReason) {
		logger.Debugf(ctx, "caravan: skip %s line %s: %s", side, identificator, reason)
		settlement.Skipped = append(settlement.Skipped, domain.SkippedItem{
			Identificator: identificator,
			Side:          side,
			Reason:        reason,
		})
	}

	sellable := accepted(snap, countryID, domain.SideSell)
	for _, r := range sells {
		if r.Identificator == constants.GoldIdentificator {
			continue
		}
		if _, ok := sellable[r.Identificator]; !ok {
			skip(r.Identificator, domain.SideSell, domain.SkipNotInCatalog)
			continue
		}
		if r.Count <= 0 {
			skip(r.Identificator, domain.SideSell, domain.SkipEmptyCount)
			continue
		}

		resource, err := snap.CountryResource(domain.SideSell, r.Identificator, countryID)
		if err != nil {
			skip(r.Identificator, domain.SideSell, domain.SkipNotInCatalog)
			continue
		}

		cost, _, ok := lineCost(snap, r.Count, resource)
		if !ok {
			skip(r.Identificator, domain.SideSell, domain.SkipPriceUnresolved)
			continue
		}

		gold = gold.Add(cost)
		income = income.Add(cost)
	}

	buyable := accepted(snap, countryID, domain.SideBuy)
	for _, r := range buys {
		if _, ok := buyable[r.Identificator]; !ok {
			skip(r.Identificator, domain.SideBuy, domain.SkipNotInCatalog)
			continue
		}
		if r.Count <= 0 {
			skip(r.Identificator, domain.SideBuy, domain.SkipEmptyCount)
			continue
		}

		resource, err := snap.CountryResource(domain.SideBuy, r.Identificator, countryID)
		if err != nil {
			skip(r.Identificator, domain.SideBuy, domain.SkipNotInCatalog)
			continue
		}

		cost, _, ok := lineCost(snap, r.Count, resource)
		if !ok {
			skip(r.Identificator, domain.SideBuy, domain.SkipPriceUnresolved)
			continue
		}

		gold = gold.Sub(cost)
		purchase = purchase.Add(cost)
		settlement.ResToPlayer = append(settlement.ResToPlayer, domain.ResourceCount{
			Identificator: resource.Identificator,
			Name:          resource.Name,
			Count:         r.Count,
		})
	}

	for _, total := range []struct {
		name   string
		amount decimal.Decimal
	}{{"sale income", income}, {"purchase cost", purchase}, {"gold", gold}} {
		if !fitsInt64(total.amount) {
			return nil, fmt.Errorf("caravan %s %s exceeds the int64 range: %w", total.name, total.amount, constants.ErrInvalidArgument)
		}
	}
	settlement.TotalSaleIncome = income.IntPart()
	settlement.TotalPurchaseCost = purchase.IntPart()

	if !gold.IsZero() {
		settlement.ResToPlayer = append(settlement.ResToPlayer, domain.ResourceCount{
			Identificator: constants.GoldIdentificator,
			Name:          snap.ResourceName(constants.GoldIdentificator, constants.GoldDefaultName),
			Count:         gold.IntPart(),
		})
	}

	return settlement, nil
}
