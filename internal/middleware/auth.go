package middleware

import (
	"errors"
	"net/http"
	"strings"

	"weeld-core/pkg/jwtutil"
	"weeld-core/pkg/logger"
	"weeld-core/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Auth returns a middleware validating the bearer session token and exposing
// its claims on the context. None of the current routes require it; it is the
// verification counterpart downstream request authorization builds on.
func Auth(issuer *jwtutil.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				prometheus.RecordAuthError("invalid_auth_format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
			}

			claims, err := issuer.Verify(parts[1])
			if err != nil {
				log.Error("Invalid session token", zap.Error(err))
				if errors.Is(err, jwtutil.ErrExpiredToken) {
					prometheus.RecordAuthError("expired_token")
				} else {
					prometheus.RecordAuthError("invalid_token")
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			// Store identity in context for later use
			c.Set("user_id", claims.Subject)
			c.Set("email", claims.Email)
			c.Set("saas_admin", claims.SaasAdmin)
			if claims.TenantID != "" {
				c.Set("tenant_id", claims.TenantID)
				c.Request().Header.Set("X-Tenant-ID", claims.TenantID)
			}

			return next(c)
		}
	}
}
