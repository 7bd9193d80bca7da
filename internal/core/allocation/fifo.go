// Package allocation distributes payments across a customer's open debts.
package allocation

import (
	"errors"
	"sort"
	"strings"

	"github.com/SscSPs/receivables_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ErrNonPositiveAmount is returned when the payment amount is zero or negative.
var ErrNonPositiveAmount = errors.New("payment amount must be positive")

// Result is the outcome of one FIFO pass.
type Result struct {
	Allocations    []domain.DebtAllocation
	Updated        []domain.Debt // debts whose remaining amount changed, in allocation order
	TotalAllocated decimal.Decimal
	Unallocated    decimal.Decimal
}

// Allocate applies amount to debts oldest-due-first. Only debts in currency with a
// positive remaining amount are considered; the input slice is not modified.
// Ties on due date fall back to creation time and then id.
func Allocate(debts []domain.Debt, currency string, amount decimal.Decimal) (Result, error) {
	if !amount.IsPositive() {
		return Result{}, ErrNonPositiveAmount
	}

	candidates := make([]domain.Debt, 0, len(debts))
	for _, d := range debts {
		if strings.EqualFold(d.CurrencyCode, currency) && d.RemainingAmount.IsPositive() {
			candidates = append(candidates, d)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.DebtID < b.DebtID
	})

	res := Result{TotalAllocated: decimal.Zero}
	left := amount
	for _, d := range candidates {
		if !left.IsPositive() {
			break
		}
		deduction := decimal.Min(d.RemainingAmount, left)
		before := d.RemainingAmount

		d.RemainingAmount = before.Sub(deduction)
		d.Status = domain.StatusFor(d.RemainingAmount, d.OriginalAmount)
		left = left.Sub(deduction)
		res.TotalAllocated = res.TotalAllocated.Add(deduction)

		res.Updated = append(res.Updated, d)
		res.Allocations = append(res.Allocations, domain.DebtAllocation{
			DebtID:          d.DebtID,
			DueDate:         d.DueDate,
			Deducted:        deduction,
			RemainingBefore: before,
			RemainingAfter:  d.RemainingAmount,
			Status:          d.Status,
		})
	}
	res.Unallocated = left
	return res, nil
}
