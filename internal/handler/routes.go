package handler

import "github.com/labstack/echo/v4"

// RegisterRoutes mounts the full HTTP surface on the Echo instance.
func RegisterRoutes(e *echo.Echo, auth *AuthHandler, tenants *TenantHandler, admin *AdminHandler) {
	// Public routes - no authentication required
	e.GET("/health", HealthCheck)
	e.GET("/metrics", Metrics)

	e.POST("/auth/login", auth.Login)

	t := e.Group("/tenants")
	t.POST("", tenants.Create)
	t.GET("", tenants.List)
	t.GET("/:id", tenants.Get)
	t.PATCH("/:id", tenants.Update)
	t.DELETE("/:id", tenants.Delete)

	a := e.Group("/admin")
	a.POST("/tenants", admin.CreateTenant)
	a.POST("/tenants/:tenantId/users", admin.CreateTenantUser)
}
