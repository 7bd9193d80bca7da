package repositories

import (
	"context"

	"github.com/SscSPs/receivables_app/internal/core/domain"
)

// UserReader defines read operations for user data.
// Users are read-only from the reconciliation engine's perspective.
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsersByCompany retrieves every active user of a company, sales reps included.
	ListUsersByCompany(ctx context.Context, companyID string) ([]domain.User, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
}
