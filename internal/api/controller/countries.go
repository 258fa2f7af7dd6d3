package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (c *Controller) ListCountries(ctx echo.Context) error {
	snap, err := c.registry.Snapshot()
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, snap.Countries())
}

func (c *Controller) GetCountry(ctx echo.Context) error {
	id, err := parseID(ctx.Param("id"))
	if err != nil {
		return err
	}

	snap, err := c.registry.Snapshot()
	if err != nil {
		return err
	}

	country, err := snap.Country(id)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, country)
}
