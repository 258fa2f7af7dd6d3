package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/eracalc/internal/domain/dto"
	"github.com/ougirez/eracalc/internal/pkg/logger"
)

func (c *Controller) ConvertResources(ctx echo.Context) error {
	req := new(dto.ConvertRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}

	reqCtx := logger.WithFields(ctx.Request().Context(), "plant_level_id", req.PlantLevelID)
	conversion, err := c.productionService.Convert(reqCtx, req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, conversion)
}

func (c *Controller) GetPlantTypes(ctx echo.Context) error {
	types, err := c.productionService.PlantTypes(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, types)
}

func (c *Controller) ListPlants(ctx echo.Context) error {
	plants, err := c.productionService.ListPlants(ctx.Request().Context(), ctx.QueryParam("type"))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, plants)
}
