package http

import (
	"context"

	"golang-stock-advisor/config"
	"golang-stock-advisor/internal/service"
	"golang-stock-advisor/pkg/logger"
	"golang-stock-advisor/pkg/middleware"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type HttpAPIHandler struct {
	cfg       *config.Config
	log       *logger.Logger
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
}

func NewHttpAPIHandler(ctx context.Context, cfg *config.Config, log *logger.Logger, echo *echo.Echo, validator *goValidator.Validate, service *service.Service) *HttpAPIHandler {
	return &HttpAPIHandler{
		cfg:       cfg,
		log:       log,
		echo:      echo,
		validator: validator,
		service:   service,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	h.echo.Use(middleware.NewRateLimiterMiddleware())

	base := h.echo.Group("/api")
	authenticated := base.Group("", middleware.NewJWTMiddleware(h.cfg.Auth.JWTSecret))

	h.SetupAuth(base, authenticated)
	h.SetupPortfolio(authenticated)
	h.SetupRecommendations(authenticated)
	h.SetupBatch(base)
}

// userID reads the authenticated user id placed on the context by the JWT middleware.
func userID(c echo.Context) uint {
	id, _ := c.Get(middleware.ContextKeyUserID).(uint)
	return id
}
