package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/receivables_app/internal/core/domain"
	"github.com/google/uuid"
)

// reconciliationExecutor applies one plan. It is not safe for concurrent use and lives
// for a single commit.
type reconciliationExecutor struct {
	svc       *reconciliationService
	caller    domain.Caller
	companyID string
	now       time.Time

	// created maps a pending customer key to the id it was stored under.
	created map[string]string
	// failed remembers pending customers whose creation failed so that later rows
	// do not retry them.
	failed map[string]error

	result domain.CommitResult
}

func newReconciliationExecutor(svc *reconciliationService, caller domain.Caller, companyID string) *reconciliationExecutor {
	return &reconciliationExecutor{
		svc:       svc,
		caller:    caller,
		companyID: companyID,
		now:       svc.Now(),
		created:   make(map[string]string),
		failed:    make(map[string]error),
		result:    domain.CommitResult{Errors: []string{}},
	}
}

// run processes rows in input order, then removes the unmatched debts in one batch.
func (e *reconciliationExecutor) run(ctx context.Context, plan domain.ReconciliationPlan) domain.CommitResult {
	var deleteIDs []string

	for _, r := range plan.Rows {
		if err := ctx.Err(); err != nil {
			e.fail(ctx, fmt.Sprintf("commit interrupted: %v", err))
			break
		}

		switch row := r.(type) {
		case domain.CreateRow:
			e.create(ctx, row)
		case domain.UpdateRow:
			e.update(ctx, row)
		case domain.SkipRow:
			e.result.Stats.Skipped++
		case domain.DeleteRow:
			deleteIDs = append(deleteIDs, row.Debt.DebtID)
		case domain.ErrorRow:
			e.fail(ctx, fmt.Sprintf("row %d: %s: %s", row.Index+1, row.Code, row.Message))
		}
	}

	if len(deleteIDs) > 0 && ctx.Err() == nil {
		deleted, err := e.svc.debtRepo.DeleteDebtsCascade(ctx, e.companyID, deleteIDs)
		if err != nil {
			e.fail(ctx, fmt.Sprintf("delete %d debts: %v", len(deleteIDs), err))
		} else {
			e.result.Stats.Deleted = deleted
		}
	}

	e.result.Success = e.result.Stats.Mutations() > 0 || len(e.result.Errors) == 0
	return e.result
}

func (e *reconciliationExecutor) fail(ctx context.Context, msg string) {
	e.svc.LogWarn(ctx, "Reconciliation row failed", slog.String("company_id", e.companyID), slog.String("error", msg))
	e.result.Errors = append(e.result.Errors, msg)
}

// customerID returns the stored id for ref, creating a pending customer on first use.
func (e *reconciliationExecutor) customerID(ctx context.Context, ref domain.CustomerRef, salesRepID string) (string, error) {
	if !ref.IsPending() {
		return ref.ID, nil
	}
	key := ref.Key()
	if id, ok := e.created[key]; ok {
		return id, nil
	}
	if err, ok := e.failed[key]; ok {
		return "", err
	}

	customer := domain.Customer{
		CustomerID:  uuid.NewString(),
		CompanyID:   e.companyID,
		Name:        ref.Name,
		AuditFields: domain.NewAuditFields(e.caller.UserID, e.now),
	}
	if salesRepID != "" {
		rep := salesRepID
		customer.AssignedUserID = &rep
	}
	if err := e.svc.customerRepo.SaveCustomer(ctx, customer); err != nil {
		err = fmt.Errorf("create customer %q: %w", ref.Name, err)
		e.failed[key] = err
		return "", err
	}
	e.created[key] = customer.CustomerID
	return customer.CustomerID, nil
}

func (e *reconciliationExecutor) create(ctx context.Context, row domain.CreateRow) {
	customerID, err := e.customerID(ctx, row.Customer, row.SalesRepID)
	if err != nil {
		e.fail(ctx, fmt.Sprintf("row %d: %v", row.Index+1, err))
		return
	}

	dueDate, err := time.Parse(domain.DueDateLayout, row.Row.DueDate)
	if err != nil {
		e.fail(ctx, fmt.Sprintf("row %d: invalid due date %q", row.Index+1, row.Row.DueDate))
		return
	}

	debt := domain.Debt{
		DebtID:          uuid.NewString(),
		CompanyID:       e.companyID,
		CustomerID:      customerID,
		DebtType:        row.Row.DebtType,
		CurrencyCode:    row.Row.Currency,
		OriginalAmount:  row.Row.Amount,
		RemainingAmount: row.Row.Amount,
		DueDate:         dueDate.UTC(),
		Status:          domain.DebtOpen,
		AuditFields:     domain.NewAuditFields(e.caller.UserID, e.now),
	}
	if err := e.svc.debtRepo.SaveDebt(ctx, debt); err != nil {
		e.fail(ctx, fmt.Sprintf("row %d: create debt for %q: %v", row.Index+1, row.Customer.Name, err))
		return
	}
	e.result.Stats.Created++
}

func (e *reconciliationExecutor) update(ctx context.Context, row domain.UpdateRow) {
	debt := domain.Debt{
		DebtID:          row.DebtID,
		CompanyID:       e.companyID,
		CustomerID:      row.Customer.ID,
		DebtType:        row.Row.DebtType,
		CurrencyCode:    row.Row.Currency,
		OriginalAmount:  row.Row.Amount,
		RemainingAmount: row.Row.Amount,
		Status:          domain.StatusFor(row.Row.Amount, row.Row.Amount),
		AuditFields: domain.AuditFields{
			LastUpdatedAt: e.now,
			LastUpdatedBy: e.caller.UserID,
		},
	}
	if err := e.svc.debtRepo.UpdateDebtAmounts(ctx, debt); err != nil {
		e.fail(ctx, fmt.Sprintf("row %d: update debt %s (%s): %v", row.Index+1, row.DebtID, row.Message(), err))
		return
	}
	e.result.Stats.Updated++
}
