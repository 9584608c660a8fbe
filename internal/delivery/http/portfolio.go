package http

import (
	"errors"
	"net/http"

	"golang-stock-advisor/internal/dto"
	"golang-stock-advisor/internal/service"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupPortfolio(authenticated *echo.Group) {
	authenticated.GET("/v1/portfolio", h.Portfolio)
}

func (h *HttpAPIHandler) Portfolio(c echo.Context) error {
	entries, err := h.service.PortfolioService.GetPortfolio(c.Request().Context(), userID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, err.Error(), nil))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("OK", entries))
}
