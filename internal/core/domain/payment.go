package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod describes how the money was received.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentCheque       PaymentMethod = "cheque"
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentOther        PaymentMethod = "other"
)

// Payment is money received from a customer. Immutable once created.
type Payment struct {
	PaymentID    string          `json:"paymentID"` // Primary Key (e.g., UUID)
	CompanyID    string          `json:"companyID"`
	CustomerID   string          `json:"customerID"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	PaymentDate  time.Time       `json:"paymentDate"`
	Method       PaymentMethod   `json:"method"`
	Reference    string          `json:"reference"`
	AuditFields
}

// DebtAllocation is the share of a payment applied to one debt.
type DebtAllocation struct {
	DebtID          string          `json:"debtID"`
	DueDate         time.Time       `json:"dueDate"`
	Deducted        decimal.Decimal `json:"deducted"`
	RemainingBefore decimal.Decimal `json:"remainingBefore"`
	RemainingAfter  decimal.Decimal `json:"remainingAfter"`
	Status          DebtStatus      `json:"status"`
}

// PaymentAllocationResult is the outcome of recording a payment.
// Unallocated is reported only; it is not kept as a customer credit.
type PaymentAllocationResult struct {
	Payment        Payment          `json:"payment"`
	Allocations    []DebtAllocation `json:"allocations"`
	TotalAllocated decimal.Decimal  `json:"totalAllocated"`
	Unallocated    decimal.Decimal  `json:"unallocated"`
}
