package handler

import (
	"net/http"

	"admingov/internal/gov/service"

	"github.com/labstack/echo/v4"
)

type GovernanceHandler struct {
	Service service.GovernanceService
}

func NewGovernanceHandler(s service.GovernanceService) *GovernanceHandler {
	return &GovernanceHandler{Service: s}
}

func (h *GovernanceHandler) extractCallerID(c echo.Context) (string, error) {
	callerID := c.Request().Header.Get("x-admin-id")
	if callerID == "" {
		return "", service.ErrUnauthorized
	}
	return callerID, nil
}

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
