package gamebackend

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/ougirez/eracalc/internal/domain"
)

func (c *Client) LoadMarket(ctx context.Context) (domain.MarketCatalog, error) {
	var market domain.MarketCatalog
	if err := c.get(ctx, pathMarket, nil, &market); err != nil {
		return domain.MarketCatalog{}, err
	}
	return market, nil
}

func (c *Client) LoadCountries(ctx context.Context) ([]domain.Country, error) {
	var countries []domain.Country
	if err := c.get(ctx, pathCountries, nil, &countries); err != nil {
		return nil, err
	}
	return countries, nil
}

func (c *Client) LoadPlantLevels(ctx context.Context) ([]domain.PlantLevel, error) {
	var plantLevels []domain.PlantLevel
	if err := c.get(ctx, pathPlantLevels, nil, &plantLevels); err != nil {
		return nil, err
	}
	return plantLevels, nil
}

func (c *Client) TradeTurnovers(ctx context.Context) ([]domain.TradeTurnover, error) {
	var turnovers []domain.TradeTurnover
	if err := c.get(ctx, pathTradeTurnover, nil, &turnovers); err != nil {
		return nil, err
	}
	return turnovers, nil
}

// TradeLevels fetches current levels and thresholds for many countries in one call.
func (c *Client) TradeLevels(ctx context.Context, countryIDs []int64) ([]domain.TradeLevelsEntry, error) {
	if len(countryIDs) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(countryIDs))
	for _, id := range countryIDs {
		ids = append(ids, strconv.FormatInt(id, 10))
	}

	var resp struct {
		Data []domain.TradeLevelsEntry `json:"data"`
	}
	if err := c.get(ctx, pathTradeLevels, url.Values{"ids": {strings.Join(ids, ",")}}, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) ScreenBundle(ctx context.Context) (*domain.ScreenBundle, error) {
	bundle := new(domain.ScreenBundle)
	if err := c.get(ctx, pathScreenBundle, nil, bundle); err != nil {
		return nil, err
	}
	return bundle, nil
}

func (c *Client) ChangeResultsDisplay(ctx context.Context, display string) error {
	return c.patch(ctx, pathResultsDisplay, map[string]string{"request": display})
}
