package dto

import (
	"github.com/ougirez/eracalc/internal/domain"
	"github.com/shopspring/decimal"
)

type CaravanRequest struct {
	CountryID  int64                  `json:"country_id" validate:"gt=0"`
	ResPlSells []domain.ResourceCount `json:"res_pl_sells" validate:"dive"`
	ResPlBuys  []domain.ResourceCount `json:"res_pl_buys" validate:"dive"`
}

// ProductionItem is a lenient request entry: counts may arrive as fractional
// numbers or numeric strings and are truncated later.
type ProductionItem struct {
	Identificator string          `json:"identificator" validate:"required"`
	Count         decimal.Decimal `json:"count"`
}

type ConvertRequest struct {
	PlantLevelID int64            `json:"-" param:"id" validate:"gt=0"`
	Request      []ProductionItem `json:"request" validate:"dive"`
	Way          string           `json:"way" validate:"omitempty,oneof=from to"`
}

type ChangeDisplayRequest struct {
	Request string `json:"request" validate:"required"`
}

type ListCaravansRequest struct {
	CountryID int64  `query:"country_id" validate:"gte=0"`
	Limit     uint64 `query:"limit" validate:"lte=500"`
}

type EligibleRequest struct {
	CountryID int64                  `json:"country_id" validate:"gt=0"`
	Side      domain.TradeSide       `json:"side" validate:"oneof=sell buy"`
	List      []domain.ResourceCount `json:"list" validate:"dive"`
}

type BoardRequest struct {
	Screen string `query:"screen"`
}
