package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/eracalc/internal/domain/dto"
)

func (c *Controller) ListTradeTurnovers(ctx echo.Context) error {
	rows, err := c.turnoverService.List(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, rows)
}

func (c *Controller) GetResultsBoard(ctx echo.Context) error {
	req := new(dto.BoardRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}

	board, err := c.resultsService.Board(ctx.Request().Context(), req.Screen)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, board)
}

func (c *Controller) ChangeResultsDisplay(ctx echo.Context) error {
	req := new(dto.ChangeDisplayRequest)
	if err := ctx.Bind(req); err != nil {
		return err
	}

	if err := c.resultsService.SetDisplay(ctx.Request().Context(), req.Request); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}
