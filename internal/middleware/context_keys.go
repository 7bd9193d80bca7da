package middleware

import (
	"context"

	"github.com/SscSPs/receivables_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is a private type for context values set by this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	userIDKey    = contextKey("userID")
	callerKey    = contextKey("caller")
	loggerCtxKey = contextKey("logger")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	caller, ok := GetCallerFromCtx(c.Request.Context())
	if !ok {
		return "", false
	}
	return caller.UserID, true
}

// GetCallerFromCtx returns the authenticated caller stored by AuthMiddleware.
func GetCallerFromCtx(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerKey).(domain.Caller)
	return caller, ok
}

// WithCaller stores caller in ctx. Used by the auth middleware and by non-HTTP entry points.
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	ctx = context.WithValue(ctx, userIDKey, caller.UserID)
	return context.WithValue(ctx, callerKey, caller)
}
