package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/receivables_app/internal/apperrors"
	"github.com/SscSPs/receivables_app/internal/core/domain"
	portsrepo "github.com/SscSPs/receivables_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/receivables_app/internal/core/ports/services"
	"github.com/SscSPs/receivables_app/internal/core/reconcile"
	"github.com/SscSPs/receivables_app/internal/metrics"
)

// reconciliationService implements the ReconciliationSvcFacade interface
type reconciliationService struct {
	BaseService
	companyRepo  portsrepo.CompanyReader
	userRepo     portsrepo.UserReader
	customerRepo portsrepo.CustomerRepositoryFacade
	debtRepo     portsrepo.DebtRepositoryFacade
}

// NewReconciliationService creates a new reconciliation service with the provided dependencies
func NewReconciliationService(
	companyRepo portsrepo.CompanyReader,
	userRepo portsrepo.UserReader,
	customerRepo portsrepo.CustomerRepositoryFacade,
	debtRepo portsrepo.DebtRepositoryFacade,
	options ...ServiceOption,
) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		BaseService:  newBaseService(options...),
		companyRepo:  companyRepo,
		userRepo:     userRepo,
		customerRepo: customerRepo,
		debtRepo:     debtRepo,
	}
}

// Ensure reconciliationService implements the ReconciliationSvcFacade interface
var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// loadSnapshot reads the store state an analysis runs against. Any failure here is systemic.
func (s *reconciliationService) loadSnapshot(ctx context.Context, companyID string) (domain.ReconciliationSnapshot, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return domain.ReconciliationSnapshot{}, err
	}
	if !company.IsActive {
		return domain.ReconciliationSnapshot{}, apperrors.NewNotFoundError("company")
	}
	if strings.TrimSpace(company.BaseCurrency) == "" {
		return domain.ReconciliationSnapshot{}, apperrors.NewValidationError("company has no base currency configured")
	}

	users, err := s.userRepo.ListUsersByCompany(ctx, companyID)
	if err != nil {
		return domain.ReconciliationSnapshot{}, fmt.Errorf("failed to list users: %w", err)
	}
	customers, err := s.customerRepo.ListCustomersByCompany(ctx, companyID)
	if err != nil {
		return domain.ReconciliationSnapshot{}, fmt.Errorf("failed to list customers: %w", err)
	}
	debts, err := s.debtRepo.ListOpenDebtsByCompany(ctx, companyID)
	if err != nil {
		return domain.ReconciliationSnapshot{}, fmt.Errorf("failed to list open debts: %w", err)
	}

	return domain.ReconciliationSnapshot{
		Company:   *company,
		Users:     users,
		Customers: customers,
		OpenDebts: debts,
	}, nil
}

// Analyze classifies rows without touching the store.
func (s *reconciliationService) Analyze(ctx context.Context, caller domain.Caller, companyID string, rows []domain.ImportRow) (*domain.ReconciliationPlan, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewValidationError("at least one row is required")
	}
	if err := s.AuthorizeCaller(ctx, caller, companyID); err != nil {
		return nil, err
	}

	snap, err := s.loadSnapshot(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load reconciliation snapshot", slog.String("company_id", companyID))
		return nil, err
	}

	plan := reconcile.Analyze(snap, rows)
	s.Metrics.ObservePlan(plan.Summary)
	s.LogInfo(ctx, "Reconciliation analyzed",
		slog.String("company_id", companyID),
		slog.Int("rows", len(rows)),
		slog.Int("to_create", plan.Summary.ToCreate),
		slog.Int("to_update", plan.Summary.ToUpdate),
		slog.Int("to_skip", plan.Summary.ToSkip),
		slog.Int("to_delete", plan.Summary.ToDelete),
		slog.Int("errors", plan.Summary.Errors),
		slog.String("fingerprint", plan.Fingerprint))
	return &plan, nil
}

// Commit re-analyzes rows against a fresh snapshot and applies the plan row by row.
// Mutations that succeeded stay applied when a later row fails.
func (s *reconciliationService) Commit(ctx context.Context, caller domain.Caller, companyID string, rows []domain.ImportRow, fingerprint string) (*domain.CommitResult, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewValidationError("at least one row is required")
	}
	if err := s.AuthorizeCaller(ctx, caller, companyID, domain.BulkWriteRoles...); err != nil {
		return nil, err
	}

	snap, err := s.loadSnapshot(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load reconciliation snapshot", slog.String("company_id", companyID))
		s.Metrics.ObserveCommit(metrics.OutcomeFailed)
		return nil, err
	}

	plan := reconcile.Analyze(snap, rows)
	if fingerprint != "" && !strings.EqualFold(fingerprint, plan.Fingerprint) {
		s.LogWarn(ctx, "Reconciliation plan drifted since analysis",
			slog.String("company_id", companyID),
			slog.String("expected", fingerprint),
			slog.String("actual", plan.Fingerprint))
		s.Metrics.ObserveCommit(metrics.OutcomeStale)
		return nil, apperrors.ErrPlanStale
	}

	exec := newReconciliationExecutor(s, caller, companyID)
	res := exec.run(ctx, plan)

	s.Metrics.ObserveCommit(metrics.CommitOutcome(res))
	s.LogInfo(ctx, "Reconciliation committed",
		slog.String("company_id", companyID),
		slog.String("user_id", caller.UserID),
		slog.Bool("success", res.Success),
		slog.Int("created", res.Stats.Created),
		slog.Int("updated", res.Stats.Updated),
		slog.Int("deleted", res.Stats.Deleted),
		slog.Int("skipped", res.Stats.Skipped),
		slog.Int("errors", len(res.Errors)))
	return &res, nil
}
