package reconcile

import (
	"fmt"

	"github.com/SscSPs/receivables_app/internal/core/domain"
)

// Analyze computes the full-sync reconciliation plan for rows against snap. It is a pure
// function: the same rows and snapshot always give the same plan, and nothing is mutated.
//
// The import is the complete set of currently open debts for the company. Every open debt
// that no valid row matches is classified as a deletion.
func Analyze(snap domain.ReconciliationSnapshot, rows []domain.ImportRow) domain.ReconciliationPlan {
	companyID := snap.Company.CompanyID
	reps := NewSalesRepIndex(companyID, snap.Users)
	customers := NewCustomerResolver(companyID, snap.Customers)
	matcher := NewMatcher(companyID, snap.OpenDebts)

	customerNames := make(map[string]string, len(snap.Customers))
	for _, c := range snap.Customers {
		customerNames[c.CustomerID] = c.Name
	}

	planRows := make([]domain.PlanRow, 0, len(rows)+len(snap.OpenDebts))
	for i, raw := range rows {
		row, issue := NormalizeRow(raw, snap.Company)
		if issue != nil {
			planRows = append(planRows, domain.ErrorRow{Index: i, Raw: raw, Code: issue.Code, Message: issue.Message})
			continue
		}

		rep, ok := reps.Resolve(row.SalesRepName)
		if !ok {
			normalized := row
			planRows = append(planRows, domain.ErrorRow{
				Index:   i,
				Raw:     raw,
				Row:     &normalized,
				Code:    domain.ErrCodeSalesRepNotFound,
				Message: fmt.Sprintf("sales rep %q not found", row.SalesRepName),
			})
			continue
		}

		customer := customers.Resolve(row.CustomerName)
		debt, found := matcher.Match(customer, row.DueDate)
		planRows = append(planRows, classify(i, row, customer, rep.UserID, debt, found))
	}

	for _, d := range matcher.Unmatched() {
		planRows = append(planRows, domain.DeleteRow{Debt: d, CustomerName: customerNames[d.CustomerID]})
	}

	plan := domain.ReconciliationPlan{
		CompanyID: companyID,
		Rows:      planRows,
		Summary:   Summarize(planRows),
	}
	plan.Fingerprint = Fingerprint(plan)
	return plan
}

// classify assigns create/update/skip to a valid, resolved row.
func classify(index int, row domain.NormalizedRow, customer domain.CustomerRef, repID string, debt domain.Debt, found bool) domain.PlanRow {
	if !found {
		return domain.CreateRow{Index: index, Row: row, Customer: customer, SalesRepID: repID}
	}
	// Exact decimal equality: 15000 and 15000.00 are equal, 15000.001 is not.
	if debt.RemainingAmount.Equal(row.Amount) {
		return domain.SkipRow{Index: index, Row: row, Customer: customer, SalesRepID: repID, DebtID: debt.DebtID}
	}
	return domain.UpdateRow{
		Index:      index,
		Row:        row,
		Customer:   customer,
		SalesRepID: repID,
		DebtID:     debt.DebtID,
		OldAmount:  debt.RemainingAmount,
	}
}

// Summarize counts rows per classification.
func Summarize(rows []domain.PlanRow) domain.PlanSummary {
	var s domain.PlanSummary
	for _, r := range rows {
		switch r.Status() {
		case domain.RowCreate:
			s.ToCreate++
		case domain.RowUpdate:
			s.ToUpdate++
		case domain.RowSkip:
			s.ToSkip++
		case domain.RowDelete:
			s.ToDelete++
		case domain.RowError:
			s.Errors++
		}
	}
	return s
}
