package dto

import (
	"github.com/SscSPs/receivables_app/internal/core/domain"
)

// --- Reconciliation DTOs ---

// ImportRowRequest is one decoded spreadsheet row. Fields stay loosely typed; the
// normalizer decides what is acceptable and reports row-level errors.
type ImportRowRequest struct {
	CustomerName    FlexString `json:"customerName"`
	DueDate         FlexString `json:"dueDate"`
	Amount          FlexString `json:"amount"`
	Currency        FlexString `json:"currency"`
	DebtType        FlexString `json:"debtType"`
	SalesRepName    FlexString `json:"salesRepName"`
	TransactionDate FlexString `json:"transactionDate,omitempty"`
}

// ToDomain converts the request row to a domain.ImportRow.
func (r ImportRowRequest) ToDomain() domain.ImportRow {
	return domain.ImportRow{
		CustomerName:    r.CustomerName.String(),
		DueDate:         r.DueDate.String(),
		Amount:          r.Amount.String(),
		Currency:        r.Currency.String(),
		DebtType:        r.DebtType.String(),
		SalesRepName:    r.SalesRepName.String(),
		TransactionDate: r.TransactionDate.String(),
	}
}

// ToDomainRows converts request rows preserving order.
func ToDomainRows(rows []ImportRowRequest) []domain.ImportRow {
	out := make([]domain.ImportRow, len(rows))
	for i, r := range rows {
		out[i] = r.ToDomain()
	}
	return out
}

// AnalyzeRequest is the full set of currently open debts for the company.
type AnalyzeRequest struct {
	Rows []ImportRowRequest `json:"rows" binding:"required,min=1,max=20000"`
}

// CommitRequest carries the row data of the create, update and skip rows of an analysis.
// Fingerprint is optional; when present the commit is refused if the plan changed.
type CommitRequest struct {
	Rows        []ImportRowRequest `json:"rows" binding:"required,min=1,max=20000"`
	Fingerprint string             `json:"fingerprint,omitempty" binding:"omitempty,len=64,hexadecimal"`
}

// RowData is the normalized (or, for invalid rows, raw) content of a plan row.
type RowData struct {
	CustomerName    string `json:"customerName"`
	CustomerID      string `json:"customerId,omitempty"`
	NewCustomer     bool   `json:"newCustomer,omitempty"`
	DueDate         string `json:"dueDate"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	DebtType        string `json:"debtType"`
	SalesRepName    string `json:"salesRepName"`
	SalesRepID      string `json:"salesRepId,omitempty"`
	TransactionDate string `json:"transactionDate,omitempty"`
}

// PlanRowResponse is one previewed row.
type PlanRowResponse struct {
	Status        domain.RowStatus    `json:"status"`
	OriginalIndex int                 `json:"originalIndex"` // -1 for deletions
	MatchedDebtID string              `json:"matchedDebtId,omitempty"`
	Data          RowData             `json:"data"`
	Message       string              `json:"message,omitempty"`
	ErrorCode     domain.RowErrorCode `json:"errorCode,omitempty"`
}

// AnalyzeResponse is the read-only preview of a reconciliation.
type AnalyzeResponse struct {
	Success     bool               `json:"success"`
	Rows        []PlanRowResponse  `json:"rows"`
	Summary     domain.PlanSummary `json:"summary"`
	Fingerprint string             `json:"fingerprint"`
	// FullSyncWarning spells out that every open debt missing from the file will be deleted.
	FullSyncWarning string `json:"fullSyncWarning,omitempty"`
}

// CommitResponse reports what a commit changed. Partial success is possible.
type CommitResponse struct {
	Success bool               `json:"success"`
	Stats   domain.CommitStats `json:"stats"`
	Errors  []string           `json:"errors"`
}

func normalizedData(row domain.NormalizedRow, customer domain.CustomerRef, repID string) RowData {
	return RowData{
		CustomerName:    customer.Name,
		CustomerID:      customer.ID,
		NewCustomer:     customer.IsPending(),
		DueDate:         row.DueDate,
		Amount:          row.Amount.String(),
		Currency:        row.Currency,
		DebtType:        string(row.DebtType),
		SalesRepName:    row.SalesRepName,
		SalesRepID:      repID,
		TransactionDate: row.TransactionDate,
	}
}

// ToPlanRowResponse converts one plan row.
func ToPlanRowResponse(r domain.PlanRow) PlanRowResponse {
	resp := PlanRowResponse{Status: r.Status(), OriginalIndex: r.SourceIndex()}
	switch row := r.(type) {
	case domain.CreateRow:
		resp.Data = normalizedData(row.Row, row.Customer, row.SalesRepID)
		if row.Customer.IsPending() {
			resp.Message = "new customer " + row.Customer.Name
		}
	case domain.UpdateRow:
		resp.MatchedDebtID = row.DebtID
		resp.Data = normalizedData(row.Row, row.Customer, row.SalesRepID)
		resp.Message = row.Message()
	case domain.SkipRow:
		resp.MatchedDebtID = row.DebtID
		resp.Data = normalizedData(row.Row, row.Customer, row.SalesRepID)
	case domain.DeleteRow:
		resp.MatchedDebtID = row.Debt.DebtID
		resp.Data = RowData{
			CustomerName: row.CustomerName,
			CustomerID:   row.Debt.CustomerID,
			DueDate:      row.Debt.DueDateKey(),
			Amount:       row.Debt.RemainingAmount.String(),
			Currency:     row.Debt.CurrencyCode,
			DebtType:     string(row.Debt.DebtType),
		}
		resp.Message = "not present in import, will be deleted"
	case domain.ErrorRow:
		if row.Row != nil {
			resp.Data = normalizedData(*row.Row, domain.CustomerRef{Name: row.Row.CustomerName}, "")
		} else {
			resp.Data = RowData{
				CustomerName:    row.Raw.CustomerName,
				DueDate:         row.Raw.DueDate,
				Amount:          row.Raw.Amount,
				Currency:        row.Raw.Currency,
				DebtType:        row.Raw.DebtType,
				SalesRepName:    row.Raw.SalesRepName,
				TransactionDate: row.Raw.TransactionDate,
			}
		}
		resp.ErrorCode = row.Code
		resp.Message = row.Message
	}
	return resp
}

// ToAnalyzeResponse converts a plan into the preview contract.
func ToAnalyzeResponse(plan *domain.ReconciliationPlan) AnalyzeResponse {
	rows := make([]PlanRowResponse, len(plan.Rows))
	for i, r := range plan.Rows {
		rows[i] = ToPlanRowResponse(r)
	}
	resp := AnalyzeResponse{
		Success:     true,
		Rows:        rows,
		Summary:     plan.Summary,
		Fingerprint: plan.Fingerprint,
	}
	if plan.Summary.ToDelete > 0 {
		resp.FullSyncWarning = "the import is treated as the complete list of open debts; open debts missing from it will be deleted together with their notes, promises and payments"
	}
	return resp
}

// ToCommitResponse converts a commit result.
func ToCommitResponse(res *domain.CommitResult) CommitResponse {
	errs := res.Errors
	if errs == nil {
		errs = []string{}
	}
	return CommitResponse{Success: res.Success, Stats: res.Stats, Errors: errs}
}
