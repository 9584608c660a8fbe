package http

import (
	"errors"
	"net/http"

	"golang-stock-advisor/internal/dto"
	"golang-stock-advisor/internal/service"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupRecommendations(authenticated *echo.Group) {
	authenticated.GET("/v1/recommendations", h.Recommendations)
}

func (h *HttpAPIHandler) Recommendations(c echo.Context) error {
	recommendations, err := h.service.RecommendationService.GetRecommendations(c.Request().Context(), userID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, err.Error(), nil))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil))
	}

	// An empty pool is an empty list, not an error.
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("OK", recommendations))
}
