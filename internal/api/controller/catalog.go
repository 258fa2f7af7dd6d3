package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/eracalc/internal/domain"
	"github.com/ougirez/eracalc/internal/service/catalog"
)

func catalogStatus(snap *catalog.Snapshot) domain.CatalogStatus {
	if snap == nil {
		return domain.CatalogStatus{}
	}

	loadedAt := snap.LoadedAt()
	market := snap.Market()
	return domain.CatalogStatus{
		Loaded:      true,
		LoadedAt:    &loadedAt,
		OffMarket:   len(market.OffMarket),
		ToMarket:    len(market.ToMarket),
		Countries:   len(snap.Countries()),
		PlantLevels: len(snap.PlantLevels()),
	}
}

func (c *Controller) CatalogStatus(ctx echo.Context) error {
	snap, _ := c.registry.Snapshot()
	return ctx.JSON(http.StatusOK, catalogStatus(snap))
}

func (c *Controller) RefreshCatalog(ctx echo.Context) error {
	snap, err := c.registry.Reload(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, catalogStatus(snap))
}
