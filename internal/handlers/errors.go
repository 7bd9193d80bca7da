package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/receivables_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error to its HTTP status. Internal failures are logged and
// answered with a generic message.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string, extra gin.H) {
	status := apperrors.StatusCode(err)
	body := gin.H{}
	for k, v := range extra {
		body[k] = v
	}
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		body["error"] = fallback
	} else {
		logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}
