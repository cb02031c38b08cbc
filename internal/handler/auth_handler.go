package handler

import (
	"errors"
	"net/http"

	"weeld-core/internal/service"
	"weeld-core/pkg/logger"
	"weeld-core/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthHandler serves the login endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login handles POST /auth/login. The request is form-encoded; username is
// the account email and companyNumber selects the tenant. All failure reasons
// collapse to the same 401 body so neither company numbers nor usernames can
// be enumerated.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Username      string `form:"username"`
		Password      string `form:"password"`
		CompanyNumber string `form:"companyNumber"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	fe := fieldErrors{}
	if req.Username == "" {
		fe["username"] = "is required"
	}
	if req.Password == "" {
		fe["password"] = "is required"
	}
	if req.CompanyNumber == "" {
		fe["companyNumber"] = "is required"
	}
	if !fe.ok() {
		prometheus.RecordAuthError("invalid_request")
		return validationFailed(c, fe)
	}

	token, err := h.auth.Login(c.Request().Context(), req.Username, req.Password, req.CompanyNumber)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLogin) {
			// Internal reason already recorded; the response stays generic.
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		log.Error("Login failed unexpectedly", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	log.Info("User logged in",
		zap.String("username", req.Username),
		zap.String("company_number", req.CompanyNumber))

	return c.JSON(http.StatusOK, echo.Map{"access_token": token})
}
