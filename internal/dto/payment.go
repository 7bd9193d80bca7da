package dto

import (
	"time"

	"github.com/SscSPs/receivables_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Payment DTOs ---

// RecordPaymentRequest records money received from a customer.
type RecordPaymentRequest struct {
	CustomerID  string               `json:"customerId" binding:"required"`
	Amount      decimal.Decimal      `json:"amount" binding:"required,dgt0"`
	Currency    string               `json:"currency" binding:"required,len=3"`
	PaymentDate string               `json:"paymentDate" binding:"required,datetime=2006-01-02"`
	Method      domain.PaymentMethod `json:"method" binding:"required,oneof=cash bank_transfer cheque credit_card other"`
	Reference   string               `json:"reference" binding:"max=255"`
}

// PaymentResponse defines data returned for a payment.
type PaymentResponse struct {
	PaymentID   string               `json:"paymentId"`
	CustomerID  string               `json:"customerId"`
	Amount      decimal.Decimal      `json:"amount"`
	Currency    string               `json:"currency"`
	PaymentDate string               `json:"paymentDate"`
	Method      domain.PaymentMethod `json:"method"`
	Reference   string               `json:"reference"`
	CreatedAt   time.Time            `json:"createdAt"`
	CreatedBy   string               `json:"createdBy"`
}

// AllocationResponse is the share of a payment applied to one debt.
type AllocationResponse struct {
	DebtID          string            `json:"debtId"`
	DueDate         string            `json:"dueDate"`
	Deducted        decimal.Decimal   `json:"deducted"`
	RemainingBefore decimal.Decimal   `json:"remainingBefore"`
	RemainingAfter  decimal.Decimal   `json:"remainingAfter"`
	Status          domain.DebtStatus `json:"status"`
}

// PaymentAllocationResponse is returned when a payment is recorded.
type PaymentAllocationResponse struct {
	Payment        PaymentResponse      `json:"payment"`
	Allocations    []AllocationResponse `json:"allocations"`
	TotalAllocated decimal.Decimal      `json:"totalAllocated"`
	Unallocated    decimal.Decimal      `json:"unallocated"`
}

// ToPaymentAllocationResponse converts the allocation result to its DTO.
func ToPaymentAllocationResponse(res *domain.PaymentAllocationResult) PaymentAllocationResponse {
	allocations := make([]AllocationResponse, len(res.Allocations))
	for i, a := range res.Allocations {
		allocations[i] = AllocationResponse{
			DebtID:          a.DebtID,
			DueDate:         a.DueDate.Format(domain.DueDateLayout),
			Deducted:        a.Deducted,
			RemainingBefore: a.RemainingBefore,
			RemainingAfter:  a.RemainingAfter,
			Status:          a.Status,
		}
	}
	p := res.Payment
	return PaymentAllocationResponse{
		Payment: PaymentResponse{
			PaymentID:   p.PaymentID,
			CustomerID:  p.CustomerID,
			Amount:      p.Amount,
			Currency:    p.CurrencyCode,
			PaymentDate: p.PaymentDate.Format(domain.DueDateLayout),
			Method:      p.Method,
			Reference:   p.Reference,
			CreatedAt:   p.CreatedAt,
			CreatedBy:   p.CreatedBy,
		},
		Allocations:    allocations,
		TotalAllocated: res.TotalAllocated,
		Unallocated:    res.Unallocated,
	}
}
