package handler

import (
	"net/http"

	"admingov/internal/gov/model"

	"github.com/labstack/echo/v4"
)

type checkPermissionResponse struct {
	Allowed bool `json:"allowed"`
}

type resolvedPermissionsResponse struct {
	AdminID     string   `json:"admin_id"`
	Permissions []string `json:"permissions"`
}

// GetAdminPermissions handles GET /admins/:id/permissions
func (h *GovernanceHandler) GetAdminPermissions(c echo.Context) error {
	if _, err := h.extractCallerID(c); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	adminID := c.Param("id")
	perms, err := h.Service.ResolvePermissions(c.Request().Context(), adminID)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, resolvedPermissionsResponse{AdminID: adminID, Permissions: perms})
}

// PostPermissionsCheck handles POST /permissions/check
func (h *GovernanceHandler) PostPermissionsCheck(c echo.Context) error {
	if _, err := h.extractCallerID(c); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.CheckPermissionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid body"},
		})
	}

	allowed, err := h.Service.CheckPermission(c.Request().Context(), req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, checkPermissionResponse{Allowed: allowed})
}
