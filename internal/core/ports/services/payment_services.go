package services

import (
	"context"

	"github.com/SscSPs/receivables_app/internal/core/domain"
	"github.com/SscSPs/receivables_app/internal/dto"
)

// PaymentRecorderSvc defines payment recording with FIFO allocation
type PaymentRecorderSvc interface {
	// RecordPayment persists the payment and applies it to the customer's open debts
	// in the same currency, oldest due date first.
	RecordPayment(ctx context.Context, caller domain.Caller, companyID string, req dto.RecordPaymentRequest) (*domain.PaymentAllocationResult, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentRecorderSvc
}
