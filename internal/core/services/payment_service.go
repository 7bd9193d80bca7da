package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/receivables_app/internal/apperrors"
	"github.com/SscSPs/receivables_app/internal/core/allocation"
	"github.com/SscSPs/receivables_app/internal/core/domain"
	portsrepo "github.com/SscSPs/receivables_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/receivables_app/internal/core/ports/services"
	"github.com/SscSPs/receivables_app/internal/dto"
	"github.com/google/uuid"
)

// paymentService implements the PaymentSvcFacade interface
type paymentService struct {
	BaseService
	companyRepo  portsrepo.CompanyReader
	customerRepo portsrepo.CustomerReader
	debtRepo     portsrepo.DebtRepositoryFacade
	paymentRepo  portsrepo.PaymentWriter
}

// NewPaymentService creates a new payment service with the provided dependencies
func NewPaymentService(
	companyRepo portsrepo.CompanyReader,
	customerRepo portsrepo.CustomerReader,
	debtRepo portsrepo.DebtRepositoryFacade,
	paymentRepo portsrepo.PaymentWriter,
	options ...ServiceOption,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		BaseService:  newBaseService(options...),
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		debtRepo:     debtRepo,
		paymentRepo:  paymentRepo,
	}
}

// Ensure paymentService implements the PaymentSvcFacade interface
var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// RecordPayment stores the payment first and then applies it FIFO to the customer's debts.
// The payment record is kept even when allocation fails afterwards.
func (s *paymentService) RecordPayment(ctx context.Context, caller domain.Caller, companyID string, req dto.RecordPaymentRequest) (*domain.PaymentAllocationResult, error) {
	if err := s.AuthorizeCaller(ctx, caller, companyID); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("amount must be greater than zero")
	}
	if !domain.FitsAmountScale(req.Amount) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("amount must have at most %d decimal places", domain.AmountScale))
	}
	paymentDate, err := time.Parse(domain.DueDateLayout, req.PaymentDate)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid payment date %q", req.PaymentDate))
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if !company.IsActive {
		return nil, apperrors.NewNotFoundError("company")
	}

	if _, err := s.customerRepo.FindCustomerByID(ctx, companyID, req.CustomerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("customer")
		}
		s.LogError(ctx, err, "Failed to find customer", slog.String("customer_id", req.CustomerID))
		return nil, err
	}

	now := s.Now()
	payment := domain.Payment{
		PaymentID:    uuid.NewString(),
		CompanyID:    companyID,
		CustomerID:   req.CustomerID,
		Amount:       req.Amount,
		CurrencyCode: currency,
		PaymentDate:  paymentDate.UTC(),
		Method:       req.Method,
		Reference:    strings.TrimSpace(req.Reference),
		AuditFields:  domain.NewAuditFields(caller.UserID, now),
	}
	if err := s.paymentRepo.SavePayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save payment", slog.String("customer_id", req.CustomerID))
		return nil, err
	}

	// Debts only exist in configured currencies, so other payments stay unallocated.
	var debts []domain.Debt
	if company.SupportsCurrency(currency) {
		debts, err = s.debtRepo.ListAllocatableDebts(ctx, companyID, req.CustomerID, currency)
		if err != nil {
			s.LogError(ctx, err, "Failed to list allocatable debts", slog.String("payment_id", payment.PaymentID))
			return nil, fmt.Errorf("payment %s recorded but not allocated: %w", payment.PaymentID, err)
		}
	} else {
		s.LogWarn(ctx, "Payment currency is not configured for the company",
			slog.String("payment_id", payment.PaymentID),
			slog.String("currency", currency))
	}

	res, err := allocation.Allocate(debts, currency, payment.Amount)
	if err != nil {
		return nil, fmt.Errorf("payment %s recorded but not allocated: %w", payment.PaymentID, err)
	}
	if len(res.Updated) > 0 {
		updates := make([]domain.DebtBalanceUpdate, len(res.Updated))
		for i, d := range res.Updated {
			d.LastUpdatedAt = now
			d.LastUpdatedBy = caller.UserID
			updates[i] = domain.DebtBalanceUpdate{Debt: d, PreviousRemaining: res.Allocations[i].RemainingBefore}
		}
		if err := s.debtRepo.UpdateDebtBalances(ctx, updates); err != nil {
			s.LogError(ctx, err, "Failed to apply payment to debts", slog.String("payment_id", payment.PaymentID))
			return nil, fmt.Errorf("payment %s recorded but not allocated: %w", payment.PaymentID, err)
		}
	}

	s.Metrics.ObservePayment(currency, res.Unallocated)
	if res.Unallocated.IsPositive() {
		s.LogWarn(ctx, "Payment exceeds open debt, remainder left unapplied",
			slog.String("payment_id", payment.PaymentID),
			slog.String("unallocated", res.Unallocated.String()))
	}
	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("customer_id", payment.CustomerID),
		slog.String("amount", payment.Amount.String()),
		slog.String("currency", currency),
		slog.Int("debts_touched", len(res.Allocations)))

	return &domain.PaymentAllocationResult{
		Payment:        payment,
		Allocations:    res.Allocations,
		TotalAllocated: res.TotalAllocated,
		Unallocated:    res.Unallocated,
	}, nil
}
