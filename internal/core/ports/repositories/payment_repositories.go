package repositories

import (
	"context"

	"github.com/SscSPs/receivables_app/internal/core/domain"
)

// PaymentWriter defines write operations for payment data
type PaymentWriter interface {
	// SavePayment persists a new, immutable payment record.
	SavePayment(ctx context.Context, payment domain.Payment) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentWriter
}
