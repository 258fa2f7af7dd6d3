package controller

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ougirez/eracalc/internal/domain/dto"
	"github.com/ougirez/eracalc/internal/pkg/constants"
	"github.com/ougirez/eracalc/internal/pkg/logger"
	"github.com/ougirez/eracalc/internal/pkg/store"
)

func (c *Controller) CalculateCaravan(ctx echo.Context) error {
	req := new(dto.CaravanRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}

	reqCtx := logger.WithFields(ctx.Request().Context(), "country_id", req.CountryID)
	settlement, err := c.caravanService.Calculate(reqCtx, req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, settlement)
}

func (c *Controller) EligibleResources(ctx echo.Context) error {
	req := new(dto.EligibleRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}

	eligible, err := c.caravanService.Eligible(ctx.Request().Context(), req.CountryID, req.List, req.Side)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, eligible)
}

func (c *Controller) SendCaravan(ctx echo.Context) error {
	req := new(dto.CaravanRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}

	reqCtx := logger.WithFields(ctx.Request().Context(), "country_id", req.CountryID)
	settlement, err := c.caravanService.Send(reqCtx, req)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, settlement)
}

func (c *Controller) GetCaravan(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return fmt.Errorf("caravan id: %s: %w", err.Error(), constants.ErrInvalidArgument)
	}

	record, err := c.caravanService.Get(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, record)
}

func (c *Controller) ListCaravans(ctx echo.Context) error {
	req := new(dto.ListCaravansRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}

	records, err := c.caravanService.List(ctx.Request().Context(), store.ListCaravansOpts{
		CountryID: req.CountryID,
		Limit:     req.Limit,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, records)
}
