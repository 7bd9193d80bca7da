package services

import (
	"context"

	"github.com/SscSPs/receivables_app/internal/core/domain"
)

// CompanyReaderSvc defines read operations for tenant configuration
type CompanyReaderSvc interface {
	// GetCompany retrieves the company configuration (currencies, default debt type).
	GetCompany(ctx context.Context, companyID string) (*domain.Company, error)
}

// CompanyAuthorizerSvc defines authorization checks scoped to a company
type CompanyAuthorizerSvc interface {
	// AuthorizeCaller verifies the caller belongs to companyID and, when roles are given,
	// holds one of them.
	AuthorizeCaller(ctx context.Context, caller domain.Caller, companyID string, roles ...domain.UserRole) error

	// ResolveCaller builds a caller identity from a stored user. Used by non-HTTP entry points.
	ResolveCaller(ctx context.Context, userID string) (domain.Caller, error)
}

// CompanySvcFacade combines all company-related service interfaces
type CompanySvcFacade interface {
	CompanyReaderSvc
	CompanyAuthorizerSvc
}
