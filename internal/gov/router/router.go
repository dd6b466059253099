package router

import (
	"admingov/internal/gov/handler"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func RegisterRoutes(e *echo.Echo, h *handler.GovernanceHandler) {
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "x-admin-id"},
	}))

	// Health Check
	e.GET("/health", handler.HealthCheck)

	v1 := e.Group("/api/v1")
	v1.Use(handler.RequestIDMiddleware)

	// Approval workflow
	v1.POST("/requests", h.PostRequest)
	v1.POST("/requests/:id/review", h.PostRequestReview)
	v1.GET("/requests", h.GetRequests)
	v1.GET("/requests/:id", h.GetRequest)

	// Permission resolution
	v1.GET("/admins/:id/permissions", h.GetAdminPermissions)
	v1.POST("/permissions/check", h.PostPermissionsCheck)

	// Override administration
	v1.POST("/overrides/grant", h.PostOverrideGrant)
	v1.POST("/overrides/block", h.PostOverrideBlock)
	v1.DELETE("/overrides/:id", h.DeleteOverride)
}
