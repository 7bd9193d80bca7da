package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtStatus is derived from the remaining amount, never set independently.
type DebtStatus string

const (
	DebtOpen    DebtStatus = "open"
	DebtPartial DebtStatus = "partial"
	DebtPaid    DebtStatus = "paid"
)

// DebtType is the canonical kind of receivable.
type DebtType string

const (
	DebtTypeCurrentAccount DebtType = "cari"
	DebtTypeCheque         DebtType = "cek"
	DebtTypePromissoryNote DebtType = "senet"
)

// DueDateLayout is the canonical date form used for matching and display.
const DueDateLayout = "2006-01-02"

// AmountScale is the number of fractional digits kept for stored amounts.
const AmountScale int32 = 4

// FitsAmountScale reports whether amount is stored without rounding.
func FitsAmountScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(AmountScale))
}

// Debt is an open receivable owed by a customer.
// Invariant: 0 <= RemainingAmount <= OriginalAmount and Status == StatusFor(RemainingAmount, OriginalAmount).
type Debt struct {
	DebtID          string          `json:"debtID"` // Primary Key (e.g., UUID)
	CompanyID       string          `json:"companyID"`
	CustomerID      string          `json:"customerID"`
	DebtType        DebtType        `json:"debtType"`
	CurrencyCode    string          `json:"currencyCode"`
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	DueDate         time.Time       `json:"dueDate"` // Date only, UTC midnight
	Status          DebtStatus      `json:"status"`
	AuditFields
}

// DebtBalanceUpdate is a new balance for Debt that applies only while the stored
// remaining amount still equals PreviousRemaining.
type DebtBalanceUpdate struct {
	Debt              Debt
	PreviousRemaining decimal.Decimal
}

// StatusFor computes the status for a remaining/original pair.
func StatusFor(remaining, original decimal.Decimal) DebtStatus {
	switch {
	case remaining.LessThanOrEqual(decimal.Zero):
		return DebtPaid
	case remaining.LessThan(original):
		return DebtPartial
	default:
		return DebtOpen
	}
}

// DueDateKey returns the due date in YYYY-MM-DD form.
func (d Debt) DueDateKey() string {
	return d.DueDate.Format(DueDateLayout)
}
