package handler

import (
	"net/http"

	"weeld-core/internal/service"
	"weeld-core/pkg/logger"
	"weeld-core/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AdminHandler serves the operator endpoints: login-ready tenant creation and
// tenant-scoped user provisioning.
type AdminHandler struct {
	admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// CreateTenant handles POST /admin/tenants
func (h *AdminHandler) CreateTenant(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordTenantOperation("admin_create")

	var req struct {
		Name          string `json:"name"`
		Slug          string `json:"slug"`
		CompanyNumber string `json:"companyNumber"`
	}
	if err := bindStrict(c, &req); err != nil {
		log.Error("Failed to parse admin tenant create request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	fe := fieldErrors{}
	checkName(fe, req.Name)
	checkSlug(fe, req.Slug)
	checkCompanyNumber(fe, req.CompanyNumber)
	if !fe.ok() {
		return validationFailed(c, fe)
	}

	tenant, err := h.admin.CreateTenant(c.Request().Context(), req.Name, req.Slug, req.CompanyNumber)
	if err != nil {
		return serviceError(c, err)
	}

	log.Info("Tenant created with company number",
		zap.String("tenant_id", tenant.ID),
		zap.String("slug", tenant.Slug))
	return c.JSON(http.StatusCreated, tenant)
}

// CreateTenantUser handles POST /admin/tenants/:tenantId/users
func (h *AdminHandler) CreateTenantUser(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.ProvisioningCounter.Inc()

	tenantID := c.Param("tenantId")
	fe := fieldErrors{}
	checkUUID(fe, "tenantId", tenantID)
	if !fe.ok() {
		return validationFailed(c, fe)
	}

	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		SaasAdmin bool   `json:"saasAdmin"`
	}
	if err := bindStrict(c, &req); err != nil {
		log.Error("Failed to parse tenant user request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	checkEmail(fe, req.Email)
	checkPassword(fe, req.Password)
	if !fe.ok() {
		return validationFailed(c, fe)
	}

	user, err := h.admin.CreateTenantUser(c.Request().Context(), tenantID, req.Email, req.Password, req.SaasAdmin)
	if err != nil {
		return serviceError(c, err)
	}

	log.Info("Tenant user provisioned",
		zap.String("tenant_id", tenantID),
		zap.String("user_id", user.ID))
	return c.JSON(http.StatusCreated, user)
}
