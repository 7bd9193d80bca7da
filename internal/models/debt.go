package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Debt is the debts table row.
type Debt struct {
	DebtID          string          `db:"debt_id"`
	CompanyID       string          `db:"company_id"`
	CustomerID      string          `db:"customer_id"`
	DebtType        string          `db:"debt_type"`
	CurrencyCode    string          `db:"currency_code"`
	OriginalAmount  decimal.Decimal `db:"original_amount"`
	RemainingAmount decimal.Decimal `db:"remaining_amount"`
	DueDate         time.Time       `db:"due_date"`
	Status          string          `db:"status"`
	AuditFields
}
