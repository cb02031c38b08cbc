package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os/exec"
	"strings"
	"testing"
	"time"

	"weeld-core/internal/service"
	"weeld-core/internal/store"
	"weeld-core/pkg/config"
	"weeld-core/pkg/database"
	"weeld-core/pkg/jwtutil"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func dockerAvailable() bool {
	cmd := exec.Command("docker", "info")
	return cmd.Run() == nil
}

// setupServer wires the full HTTP surface against a PostgreSQL testcontainer.
func setupServer(t *testing.T) *echo.Echo {
	t.Helper()

	if !dockerAvailable() {
		t.Skip("Docker is not available, skipping integration test")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("weeld_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.DB.URL = connStr
	cfg.JWT.Secret = "integration-test-secret"
	cfg.JWT.ExpiresIn = time.Hour

	db, err := database.Init(cfg)
	require.NoError(t, err)

	st := store.New(db)
	issuer := jwtutil.NewIssuer(&cfg.JWT)

	e := echo.New()
	RegisterRoutes(e,
		NewAuthHandler(service.NewAuthService(st, issuer)),
		NewTenantHandler(service.NewTenantService(st)),
		NewAdminHandler(service.NewAdminService(st)),
	)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doLogin(t *testing.T, e *echo.Echo, username, password, companyNumber string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{
		"username":      {username},
		"password":      {password},
		"companyNumber": {companyNumber},
	}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestEndToEndLoginScenario(t *testing.T) {
	e := setupServer(t)

	// Create a login-ready tenant through the admin surface.
	rec := doJSON(t, e, http.MethodPost, "/admin/tenants",
		`{"name":"Acme Corp","slug":"acme-corp","companyNumber":"FR12345678900012"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	tenant := decodeJSON(t, rec)
	tenantID, _ := tenant["id"].(string)
	require.NotEmpty(t, tenantID)
	assert.Equal(t, "FR12345678900012", tenant["companyNumber"])

	// Provision a user under it.
	rec = doJSON(t, e, http.MethodPost, "/admin/tenants/"+tenantID+"/users",
		`{"email":"u@acme.test","password":"StrongP@ss1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	user := decodeJSON(t, rec)
	assert.Equal(t, "u@acme.test", user["email"])
	assert.NotContains(t, rec.Body.String(), "passwordHash", "stored hash must never be serialized")

	// Valid credentials return a token.
	rec = doLogin(t, e, "u@acme.test", "StrongP@ss1", "FR12345678900012")
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := decodeJSON(t, rec)["access_token"].(string)
	require.NotEmpty(t, token)

	issuer := jwtutil.NewIssuer(&config.JWTConfig{Secret: "integration-test-secret", ExpiresIn: time.Hour})
	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u@acme.test", claims.Email)
	assert.Equal(t, tenantID, claims.TenantID)
	assert.Equal(t, "FR12345678900012", claims.CompanyNumber)

	// The three login failure modes are indistinguishable on the wire.
	wrongPassword := doLogin(t, e, "u@acme.test", "wrong-password", "FR12345678900012")
	wrongCompany := doLogin(t, e, "u@acme.test", "StrongP@ss1", "FR00000000000000")
	unknownUser := doLogin(t, e, "nobody@acme.test", "StrongP@ss1", "FR12345678900012")

	for _, rec := range []*httptest.ResponseRecorder{wrongPassword, wrongCompany, unknownUser} {
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	assert.Equal(t, wrongPassword.Body.String(), wrongCompany.Body.String())
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestTenantLifecycleOverHTTP(t *testing.T) {
	e := setupServer(t)

	rec := doJSON(t, e, http.MethodPost, "/tenants", `{"name":"Acme Corp","slug":"acme-corp"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	tenantID, _ := decodeJSON(t, rec)["id"].(string)
	require.NotEmpty(t, tenantID)

	// Duplicate slug conflicts instead of overwriting or blowing up.
	rec = doJSON(t, e, http.MethodPost, "/tenants", `{"name":"Other","slug":"acme-corp"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, e, http.MethodGet, "/tenants", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rec = doJSON(t, e, http.MethodPatch, "/tenants/"+tenantID, `{"name":"Acme Corporation"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Acme Corporation", decodeJSON(t, rec)["name"])

	rec = doJSON(t, e, http.MethodDelete, "/tenants/"+tenantID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Second delete and subsequent get both report not found.
	rec = doJSON(t, e, http.MethodDelete, "/tenants/"+tenantID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = doJSON(t, e, http.MethodGet, "/tenants/"+tenantID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProvisioningIsIdempotentOverHTTP(t *testing.T) {
	e := setupServer(t)

	rec := doJSON(t, e, http.MethodPost, "/admin/tenants",
		`{"name":"Acme Corp","slug":"acme-corp","companyNumber":"FR12345678900012"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	tenantID, _ := decodeJSON(t, rec)["id"].(string)

	first := doJSON(t, e, http.MethodPost, "/admin/tenants/"+tenantID+"/users",
		`{"email":"u@acme.test","password":"StrongP@ss1"}`)
	require.Equal(t, http.StatusCreated, first.Code)
	second := doJSON(t, e, http.MethodPost, "/admin/tenants/"+tenantID+"/users",
		`{"email":"u@acme.test","password":"StrongP@ss1"}`)
	require.Equal(t, http.StatusCreated, second.Code)

	assert.Equal(t, decodeJSON(t, first)["id"], decodeJSON(t, second)["id"])
}

func TestProvisioningUnknownTenantIsNotFound(t *testing.T) {
	e := setupServer(t)

	rec := doJSON(t, e, http.MethodPost,
		"/admin/tenants/5c3f7a11-0000-4c8e-9a51-000000000000/users",
		`{"email":"u@acme.test","password":"StrongP@ss1"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSaasAdminCrossTenantLogin(t *testing.T) {
	e := setupServer(t)

	// Two tenants; the admin is provisioned under the first only.
	rec := doJSON(t, e, http.MethodPost, "/admin/tenants",
		`{"name":"Acme Corp","slug":"acme-corp","companyNumber":"FR12345678900012"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	acmeID, _ := decodeJSON(t, rec)["id"].(string)

	rec = doJSON(t, e, http.MethodPost, "/admin/tenants",
		`{"name":"Globex","slug":"globex","companyNumber":"FR99999999900099"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/admin/tenants/"+acmeID+"/users",
		`{"email":"root@weeld.local","password":"AdminP@ss1","saasAdmin":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Admin authenticates against the tenant it holds no membership for.
	rec = doLogin(t, e, "root@weeld.local", "AdminP@ss1", "FR99999999900099")
	assert.Equal(t, http.StatusOK, rec.Code)

	// A plain user in the same position is rejected.
	rec = doJSON(t, e, http.MethodPost, "/admin/tenants/"+acmeID+"/users",
		`{"email":"u@acme.test","password":"StrongP@ss1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doLogin(t, e, "u@acme.test", "StrongP@ss1", "FR99999999900099")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
