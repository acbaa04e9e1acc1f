package service

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type HealthCheckRequest struct{}

type HealthCheckResponse struct {
	Status string `example:"healthy" json:"status"`
}

func (s *Service) CheckHealth(c echo.Context, _ *HealthCheckRequest) error {
	zerolog.Ctx(c.Request().Context()).Debug().Msg("Health check requested")

	return c.JSON(http.StatusOK, HealthCheckResponse{Status: "healthy"})
}
