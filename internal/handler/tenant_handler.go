package handler

import (
	"net/http"

	"weeld-core/internal/service"
	"weeld-core/pkg/logger"
	"weeld-core/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TenantHandler serves the tenant directory CRUD endpoints.
type TenantHandler struct {
	tenants *service.TenantService
}

func NewTenantHandler(tenants *service.TenantService) *TenantHandler {
	return &TenantHandler{tenants: tenants}
}

// Create handles POST /tenants
func (h *TenantHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordTenantOperation("create")

	var req struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := bindStrict(c, &req); err != nil {
		log.Error("Failed to parse tenant create request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	fe := fieldErrors{}
	checkName(fe, req.Name)
	checkSlug(fe, req.Slug)
	if !fe.ok() {
		return validationFailed(c, fe)
	}

	tenant, err := h.tenants.Create(c.Request().Context(), req.Name, req.Slug)
	if err != nil {
		return serviceError(c, err)
	}

	log.Info("Tenant created", zap.String("tenant_id", tenant.ID), zap.String("slug", tenant.Slug))
	return c.JSON(http.StatusCreated, tenant)
}

// List handles GET /tenants
func (h *TenantHandler) List(c echo.Context) error {
	prometheus.RecordTenantOperation("list")

	tenants, err := h.tenants.List(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, tenants)
}

// Get handles GET /tenants/:id
func (h *TenantHandler) Get(c echo.Context) error {
	prometheus.RecordTenantOperation("get")

	id := c.Param("id")
	fe := fieldErrors{}
	checkUUID(fe, "id", id)
	if !fe.ok() {
		return validationFailed(c, fe)
	}

	tenant, err := h.tenants.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, tenant)
}

// Update handles PATCH /tenants/:id
func (h *TenantHandler) Update(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordTenantOperation("update")

	id := c.Param("id")
	fe := fieldErrors{}
	checkUUID(fe, "id", id)
	if !fe.ok() {
		return validationFailed(c, fe)
	}

	var req struct {
		Name *string `json:"name"`
		Slug *string `json:"slug"`
	}
	if err := bindStrict(c, &req); err != nil {
		log.Error("Failed to parse tenant update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Name != nil {
		checkName(fe, *req.Name)
	}
	if req.Slug != nil {
		checkSlug(fe, *req.Slug)
	}
	if !fe.ok() {
		return validationFailed(c, fe)
	}

	tenant, err := h.tenants.Update(c.Request().Context(), id, req.Name, req.Slug)
	if err != nil {
		return serviceError(c, err)
	}

	log.Info("Tenant updated", zap.String("tenant_id", tenant.ID))
	return c.JSON(http.StatusOK, tenant)
}

// Delete handles DELETE /tenants/:id
func (h *TenantHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordTenantOperation("delete")

	id := c.Param("id")
	fe := fieldErrors{}
	checkUUID(fe, "id", id)
	if !fe.ok() {
		return validationFailed(c, fe)
	}

	if err := h.tenants.Delete(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}

	log.Info("Tenant deleted", zap.String("tenant_id", id))
	return c.NoContent(http.StatusNoContent)
}
