package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ImportRow is one raw, already decoded spreadsheet row. Every field is kept as text so
// that normalization decides what is acceptable.
type ImportRow struct {
	CustomerName    string `json:"customerName"`
	DueDate         string `json:"dueDate"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	DebtType        string `json:"debtType"`
	SalesRepName    string `json:"salesRepName"`
	TransactionDate string `json:"transactionDate,omitempty"`
}

// NormalizedRow is an ImportRow after canonicalization.
type NormalizedRow struct {
	CustomerName    string          `json:"customerName"`
	DueDate         string          `json:"dueDate"` // YYYY-MM-DD
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	DebtType        DebtType        `json:"debtType"`
	SalesRepName    string          `json:"salesRepName"`
	TransactionDate string          `json:"transactionDate,omitempty"` // YYYY-MM-DD or empty
}

// RowStatus classifies a plan row.
type RowStatus string

const (
	RowCreate RowStatus = "create"
	RowUpdate RowStatus = "update"
	RowSkip   RowStatus = "skip"
	RowDelete RowStatus = "delete"
	RowError  RowStatus = "error"
)

// RowErrorCode is a recoverable, per-row validation failure.
type RowErrorCode string

const (
	ErrCodeCustomerNameEmpty RowErrorCode = "CUSTOMER_NAME_EMPTY"
	ErrCodeInvalidDate       RowErrorCode = "INVALID_DATE"
	ErrCodeInvalidAmount     RowErrorCode = "INVALID_AMOUNT"
	ErrCodeSalesRepNotFound  RowErrorCode = "SALES_REP_NOT_FOUND"
)

// CustomerRef is either an existing customer or one that would be created on commit.
type CustomerRef struct {
	ID      string // empty while pending
	Name    string
	pending bool
}

// ExistingCustomer references a stored customer.
func ExistingCustomer(id, name string) CustomerRef {
	return CustomerRef{ID: id, Name: name}
}

// PendingCustomer references a customer that does not exist yet.
func PendingCustomer(name string) CustomerRef {
	return CustomerRef{Name: name, pending: true}
}

// IsPending reports whether the customer would be created on commit.
func (r CustomerRef) IsPending() bool {
	return r.pending
}

// Key identifies the customer inside one plan. Pending customers get a placeholder
// that can never collide with a stored id.
func (r CustomerRef) Key() string {
	if r.pending {
		return "pending:" + r.Name
	}
	return r.ID
}

// PlanRow is one entry of a reconciliation plan: CreateRow, UpdateRow, SkipRow, DeleteRow or ErrorRow.
type PlanRow interface {
	Status() RowStatus
	// SourceIndex is the zero-based index of the import row, or -1 for deletions.
	SourceIndex() int
	planRow()
}

// CreateRow inserts a new debt, creating the customer first when it is pending.
type CreateRow struct {
	Index      int
	Row        NormalizedRow
	Customer   CustomerRef
	SalesRepID string
}

// UpdateRow replaces both amounts of a matched debt.
type UpdateRow struct {
	Index      int
	Row        NormalizedRow
	Customer   CustomerRef
	SalesRepID string
	DebtID     string
	OldAmount  decimal.Decimal
}

// SkipRow matched a debt whose remaining amount already equals the import amount.
type SkipRow struct {
	Index      int
	Row        NormalizedRow
	Customer   CustomerRef
	SalesRepID string
	DebtID     string
}

// DeleteRow retires an open debt that no import row referenced.
type DeleteRow struct {
	Debt         Debt
	CustomerName string
}

// ErrorRow could not be classified. Row is set when normalization succeeded.
type ErrorRow struct {
	Index   int
	Raw     ImportRow
	Row     *NormalizedRow
	Code    RowErrorCode
	Message string
}

func (CreateRow) Status() RowStatus { return RowCreate }
func (UpdateRow) Status() RowStatus { return RowUpdate }
func (SkipRow) Status() RowStatus   { return RowSkip }
func (DeleteRow) Status() RowStatus { return RowDelete }
func (ErrorRow) Status() RowStatus  { return RowError }

func (r CreateRow) SourceIndex() int { return r.Index }
func (r UpdateRow) SourceIndex() int { return r.Index }
func (r SkipRow) SourceIndex() int   { return r.Index }
func (DeleteRow) SourceIndex() int   { return -1 }
func (r ErrorRow) SourceIndex() int  { return r.Index }

func (CreateRow) planRow() {}
func (UpdateRow) planRow() {}
func (SkipRow) planRow()   {}
func (DeleteRow) planRow() {}
func (ErrorRow) planRow()  {}

// Message renders the amount change as "old -> new".
func (r UpdateRow) Message() string {
	return fmt.Sprintf("%s -> %s", r.OldAmount.String(), r.Row.Amount.String())
}

// PlanSummary counts plan rows per classification.
type PlanSummary struct {
	ToCreate int `json:"toCreate"`
	ToUpdate int `json:"toUpdate"`
	ToDelete int `json:"toDelete"`
	ToSkip   int `json:"toSkip"`
	Errors   int `json:"errors"`
}

// ReconciliationPlan is the derived, never persisted diff between an import and the store.
type ReconciliationPlan struct {
	CompanyID   string
	Rows        []PlanRow
	Summary     PlanSummary
	Fingerprint string
}

// ReconciliationSnapshot is the store state an analysis runs against.
type ReconciliationSnapshot struct {
	Company   Company
	Users     []User
	Customers []Customer
	OpenDebts []Debt
}

// CommitStats counts the mutations a commit applied.
type CommitStats struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Deleted int `json:"deleted"`
	Skipped int `json:"skipped"`
}

// Mutations is the number of rows that changed the store.
func (s CommitStats) Mutations() int {
	return s.Created + s.Updated + s.Deleted
}

// CommitResult reports a commit. Partial success is possible; Errors lists the rows that failed.
type CommitResult struct {
	Success bool        `json:"success"`
	Stats   CommitStats `json:"stats"`
	Errors  []string    `json:"errors"`
}
