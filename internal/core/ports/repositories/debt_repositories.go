package repositories

import (
	"context"

	"github.com/SscSPs/receivables_app/internal/core/domain"
)

// DebtReader defines read operations for debt data
type DebtReader interface {
	// ListOpenDebtsByCompany retrieves the debts of a company whose status is open.
	ListOpenDebtsByCompany(ctx context.Context, companyID string) ([]domain.Debt, error)

	// ListAllocatableDebts retrieves the debts of a customer in currencyCode that still have a
	// positive remaining amount, ordered by due date ascending.
	ListAllocatableDebts(ctx context.Context, companyID, customerID, currencyCode string) ([]domain.Debt, error)
}

// DebtWriter defines write operations for debt data
type DebtWriter interface {
	// SaveDebt persists a new debt.
	SaveDebt(ctx context.Context, debt domain.Debt) error

	// UpdateDebtAmounts replaces the original and remaining amounts, currency, type and status
	// of a debt that is still open. A debt that is gone or no longer open yields ErrConflict.
	UpdateDebtAmounts(ctx context.Context, debt domain.Debt) error

	// UpdateDebtBalances writes remaining amount and status for each update in one transaction.
	// If any stored balance no longer equals its PreviousRemaining nothing is written and
	// ErrConflict is returned.
	UpdateDebtBalances(ctx context.Context, updates []domain.DebtBalanceUpdate) error
}

// DebtLifecycleManager defines operations for retiring debts
type DebtLifecycleManager interface {
	// DeleteDebtsCascade removes the debts with the given ids together with their notes,
	// promises and payments. It returns the number of debts removed.
	DeleteDebtsCascade(ctx context.Context, companyID string, debtIDs []string) (int, error)
}

// DebtRepositoryFacade combines all debt-related repository interfaces
type DebtRepositoryFacade interface {
	DebtReader
	DebtWriter
	DebtLifecycleManager
}
