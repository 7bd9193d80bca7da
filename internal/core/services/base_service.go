package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/receivables_app/internal/apperrors"
	"github.com/SscSPs/receivables_app/internal/core/domain"
	portssvc "github.com/SscSPs/receivables_app/internal/core/ports/services"
	"github.com/SscSPs/receivables_app/internal/metrics"
	"github.com/SscSPs/receivables_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Authorizer portssvc.CompanyAuthorizerSvc
	Metrics    *metrics.Metrics
	Clock      func() time.Time
}

// ServiceOption is a functional option for configuring a service
type ServiceOption func(*BaseService)

// WithAuthorizer sets the company authorizer used for caller checks
func WithAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) ServiceOption {
	return func(s *BaseService) {
		s.Authorizer = authorizer
	}
}

// WithMetrics sets the prometheus collectors
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *BaseService) {
		s.Metrics = m
	}
}

// WithClock overrides the time source
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Clock = clock
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	b := BaseService{Clock: time.Now}
	for _, option := range options {
		option(&b)
	}
	return b
}

// Now returns the current time in UTC
func (s *BaseService) Now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock().UTC()
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeCaller checks that the caller may act on companyID with one of roles.
// Without an authorizer only the token claims are checked.
func (s *BaseService) AuthorizeCaller(ctx context.Context, caller domain.Caller, companyID string, roles ...domain.UserRole) error {
	var err error
	if s.Authorizer != nil {
		err = s.Authorizer.AuthorizeCaller(ctx, caller, companyID, roles...)
	} else {
		err = checkCallerClaims(caller, companyID, roles...)
	}
	if err != nil {
		s.LogWarn(ctx, "Caller not authorized",
			slog.String("user_id", caller.UserID),
			slog.String("company_id", companyID),
			slog.String("role", string(caller.Role)),
			slog.String("error", err.Error()))
	}
	return err
}

// checkCallerClaims validates a caller without consulting the store. A caller of another
// company gets ErrNotFound so that company ids cannot be probed.
func checkCallerClaims(caller domain.Caller, companyID string, roles ...domain.UserRole) error {
	if caller.UserID == "" {
		return apperrors.ErrUnauthorized
	}
	if caller.CompanyID != companyID {
		return apperrors.NewNotFoundError("company")
	}
	if len(roles) > 0 && !caller.HasRole(roles...) {
		return apperrors.ErrForbidden
	}
	return nil
}
