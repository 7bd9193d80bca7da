package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/receivables_app/internal/apperrors"
	"github.com/SscSPs/receivables_app/internal/core/domain"
	portsrepo "github.com/SscSPs/receivables_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/receivables_app/internal/core/ports/services"
)

// companyService implements the CompanySvcFacade interface
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyReader
	userRepo    portsrepo.UserReader
}

// NewCompanyService creates a new company service with the provided dependencies
func NewCompanyService(companyRepo portsrepo.CompanyReader, userRepo portsrepo.UserReader, options ...ServiceOption) portssvc.CompanySvcFacade {
	return &companyService{
		BaseService: newBaseService(options...),
		companyRepo: companyRepo,
		userRepo:    userRepo,
	}
}

// Ensure companyService implements the CompanySvcFacade interface
var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// GetCompany retrieves an active company. Inactive companies are treated as missing.
func (s *companyService) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find company by ID", slog.String("company_id", companyID))
		}
		return nil, err
	}
	if !company.IsActive {
		s.LogDebug(ctx, "Company is inactive", slog.String("company_id", companyID))
		return nil, apperrors.NewNotFoundError("company")
	}
	return company, nil
}

// AuthorizeCaller checks the caller against the stored user record rather than trusting
// the token's role claim, so demoted or removed users lose access immediately.
func (s *companyService) AuthorizeCaller(ctx context.Context, caller domain.Caller, companyID string, roles ...domain.UserRole) error {
	if err := checkCallerClaims(caller, companyID); err != nil {
		return err
	}

	user, err := s.userRepo.FindUserByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Caller has no active user record", slog.String("user_id", caller.UserID))
			return apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to load caller", slog.String("user_id", caller.UserID))
		return err
	}

	if user.CompanyID != companyID {
		return apperrors.NewNotFoundError("company")
	}
	if len(roles) > 0 && !(domain.Caller{UserID: user.UserID, CompanyID: user.CompanyID, Role: user.Role}).HasRole(roles...) {
		s.LogDebug(ctx, "Caller does not have required role",
			slog.String("user_id", user.UserID),
			slog.String("user_role", string(user.Role)))
		return apperrors.ErrForbidden
	}
	return nil
}

// ResolveCaller builds a caller from a stored user.
func (s *companyService) ResolveCaller(ctx context.Context, userID string) (domain.Caller, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.Caller{}, fmt.Errorf("user %s: %w", userID, apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to resolve caller", slog.String("user_id", userID))
		return domain.Caller{}, err
	}
	return domain.Caller{UserID: user.UserID, CompanyID: user.CompanyID, Role: user.Role}, nil
}
