package domain

import "time"

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type TradeTurnover struct {
	CountryID     int64  `json:"country_id"`
	Name          string `json:"name"`
	ShortName     string `json:"short_name,omitempty"`
	TradeTurnover *int64 `json:"trade_turnover"`
}

type TradeLevel struct {
	CurrentLevel int   `json:"current_level"`
	Threshold    int64 `json:"threshold"`
}

type TradeThreshold struct {
	Level     int    `json:"level"`
	Threshold int64  `json:"threshold"`
	Name      string `json:"name"`
}

type TradeLevelsEntry struct {
	CountryID  int64            `json:"country_id"`
	Level      *TradeLevel      `json:"level"`
	Thresholds []TradeThreshold `json:"thresholds"`
}

// TradeTurnoverRow is a turnover annotated for the console board.
type TradeTurnoverRow struct {
	TradeTurnover
	Formatted       string  `json:"formatted"`
	LevelName       string  `json:"level_name"`
	ProgressPercent float64 `json:"progress_percent"`
}

type MerchantResult struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Place   int    `json:"place"`
	Capital int64  `json:"capital"`
}

type NobleResult struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Place     int    `json:"place"`
	Influence int64  `json:"influence"`
}

type ScreenBundle struct {
	Display   string           `json:"display"`
	Merchants []MerchantResult `json:"merchants"`
	Nobles    []NobleResult    `json:"nobles"`
}

type CatalogStatus struct {
	Loaded      bool       `json:"loaded"`
	LoadedAt    *time.Time `json:"loaded_at,omitempty"`
	OffMarket   int        `json:"off_market"`
	ToMarket    int        `json:"to_market"`
	Countries   int        `json:"countries"`
	PlantLevels int        `json:"plant_levels"`
}
