package controller

import (
	"fmt"
	"strconv"

	"github.com/ougirez/eracalc/internal/pkg/constants"
	"github.com/ougirez/eracalc/internal/service/caravan"
	"github.com/ougirez/eracalc/internal/service/catalog"
	"github.com/ougirez/eracalc/internal/service/production"
	"github.com/ougirez/eracalc/internal/service/results"
	"github.com/ougirez/eracalc/internal/service/turnover"
)

type Services struct {
	Registry   *catalog.Registry
	Caravan    *caravan.Service
	Production *production.Service
	Turnover   *turnover.Service
	Results    *results.Service
}

type Controller struct {
	registry          *catalog.Registry
	caravanService    *caravan.Service
	productionService *production.Service
	turnoverService   *turnover.Service
	resultsService    *results.Service
}

func NewController(services Services) *Controller {
	return &Controller{
		registry:          services.Registry,
		caravanService:    services.Caravan,
		productionService: services.Production,
		turnoverService:   services.Turnover,
		resultsService:    services.Results,
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id %q must be a positive integer: %w", raw, constants.ErrInvalidArgument)
	}
	return id, nil
}
