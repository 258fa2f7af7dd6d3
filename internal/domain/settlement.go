package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/ougirez/eracalc/internal/pkg/constants"
)

type TradeSide string

const (
	// SideSell is the player selling to the country market.
	SideSell TradeSide = "sell"
	// SideBuy is the player buying from the country market.
	SideBuy TradeSide = "buy"
)

type SkipReason string

const (
	SkipEmptyCount      SkipReason = "empty_count"
	SkipNotInCatalog    SkipReason = "not_in_catalog"
	SkipPriceUnresolved SkipReason = "price_unresolved"
)

type SkippedItem struct {
	Identificator string     `json:"identificator"`
	Side          TradeSide  `json:"side"`
	Reason        SkipReason `json:"reason"`
}

type Settlement struct {
	ID                *uuid.UUID      `json:"id,omitempty"`
	CountryID         int64           `json:"country_id"`
	ResToPlayer       []ResourceCount `json:"res_to_player"`
	TotalPurchaseCost int64           `json:"total_purchase_cost"`
	TotalSaleIncome   int64           `json:"total_sale_income"`
	Embargo           int             `json:"embargo"`
	Skipped           []SkippedItem   `json:"skipped,omitempty"`
	CreatedAt         *time.Time      `json:"created_at,omitempty"`
}

// Gold returns the net gold line of the settlement, zero when absent.
func (s *Settlement) Gold() int64 {
	for _, r := range s.ResToPlayer {
		if r.Identificator == constants.GoldIdentificator {
			return r.Count
		}
	}
	return 0
}

// CaravanRecord is a journaled settlement together with the request that produced it.
type CaravanRecord struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	CountryID int64           `json:"country_id" db:"country_id"`
	Sells     []ResourceCount `json:"res_pl_sells" db:"sells"`
	Buys      []ResourceCount `json:"res_pl_buys" db:"buys"`
	Result    Settlement      `json:"result" db:"result"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
