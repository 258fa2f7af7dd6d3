package store

import (
	"errors"

	"github.com/ougirez/eracalc/internal/pkg/constants"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

const (
	tableResources          = "resources"
	tableCountries          = "countries"
	tablePlantLevels        = "plant_levels"
	tableCaravanSettlements = "caravan_settlements"
)

const (
	sideOffMarket = "off_market"
	sideToMarket  = "to_market"
)

var mapping = map[error]error{pgx.ErrNoRows: constants.ErrDBNotFound}

func wrapErr(err error) error {
	for k, v := range mapping {
		if errors.Is(err, k) {
			return v
		}
	}
	return err
}

// builder возвращает squirrel SQL Builder обьект.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}
