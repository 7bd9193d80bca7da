package services

import (
	"context"

	"github.com/SscSPs/receivables_app/internal/core/domain"
)

// ReconciliationAnalyzerSvc defines the read-only preview of a bulk import
type ReconciliationAnalyzerSvc interface {
	// Analyze classifies rows against the company's current open debts without mutating anything.
	Analyze(ctx context.Context, caller domain.Caller, companyID string, rows []domain.ImportRow) (*domain.ReconciliationPlan, error)
}

// ReconciliationCommitterSvc defines the mutating replay of a bulk import
type ReconciliationCommitterSvc interface {
	// Commit re-analyzes rows against fresh store state and applies the result. When
	// fingerprint is non-empty it must match the fresh plan. Commit is not atomic.
	Commit(ctx context.Context, caller domain.Caller, companyID string, rows []domain.ImportRow, fingerprint string) (*domain.CommitResult, error)
}

// ReconciliationSvcFacade combines all reconciliation service interfaces
type ReconciliationSvcFacade interface {
	ReconciliationAnalyzerSvc
	ReconciliationCommitterSvc
}
