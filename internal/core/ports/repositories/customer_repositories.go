package repositories

import (
	"context"

	"github.com/SscSPs/receivables_app/internal/core/domain"
)

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	// FindCustomerByID retrieves a customer scoped to a company.
	FindCustomerByID(ctx context.Context, companyID, customerID string) (*domain.Customer, error)

	// ListCustomersByCompany retrieves all customers of a company.
	ListCustomersByCompany(ctx context.Context, companyID string) ([]domain.Customer, error)
}

// CustomerWriter defines write operations for customer data
type CustomerWriter interface {
	// SaveCustomer persists a new customer.
	SaveCustomer(ctx context.Context, customer domain.Customer) error
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
