package handler

import (
	"errors"
	"net/http"

	"weeld-core/internal/store"
	"weeld-core/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// serviceError translates service-layer failures into HTTP responses. Raw
// store errors never reach the client; unexpected failures are logged
// server-side and surfaced as a generic 500.
func serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, store.ErrDuplicateSlug):
		return c.JSON(http.StatusConflict, echo.Map{"error": "slug already exists"})
	case errors.Is(err, store.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
	default:
		logger.FromEcho(c).Error("Unexpected service error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
