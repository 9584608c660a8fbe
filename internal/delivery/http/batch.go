package http

import (
	"context"
	"net/http"

	"golang-stock-advisor/internal/dto"
	"golang-stock-advisor/pkg/logger"
	"golang-stock-advisor/pkg/utils"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupBatch(base *echo.Group) {
	v1 := base.Group("/v1/batch")
	{
		v1.POST("/run", h.RunBatch)
	}
}

// RunBatch triggers one pipeline pass. The run is detached from the request
// context so a closed connection cannot interrupt a half-finished batch.
func (h *HttpAPIHandler) RunBatch(c echo.Context) error {
	utils.GoSafe(func() {
		if _, err := h.service.RatingBatchService.Run(context.Background()); err != nil {
			h.log.Error("Rating batch failed", logger.ErrorField(err))
		}
	})

	return c.JSON(http.StatusAccepted, dto.NewBaseResponse(http.StatusAccepted, "Rating batch started", nil))
}
