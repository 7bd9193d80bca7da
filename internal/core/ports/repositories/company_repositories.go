package repositories

import (
	"context"

	"github.com/SscSPs/receivables_app/internal/core/domain"
)

// CompanyReader defines read operations for tenant configuration
type CompanyReader interface {
	// FindCompanyByID retrieves a company with its configured currencies.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
}

// CompanyRepositoryFacade combines all company-related repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
}
