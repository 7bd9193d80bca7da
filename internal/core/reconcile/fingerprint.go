package reconcile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/SscSPs/receivables_app/internal/core/domain"
)

// Fingerprint hashes the parts of a plan that commit acts on. Two plans with the same
// fingerprint perform the same mutations. Error rows and source indexes are left out:
// commit receives only the committable rows, so their positions shift.
func Fingerprint(plan domain.ReconciliationPlan) string {
	h := sha256.New()
	_, _ = io.WriteString(h, plan.CompanyID+"\n")
	for _, r := range plan.Rows {
		if line, ok := fingerprintLine(r); ok {
			_, _ = io.WriteString(h, line+"\n")
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func fingerprintLine(r domain.PlanRow) (string, bool) {
	switch row := r.(type) {
	case domain.CreateRow:
		return fmt.Sprintf("create|%s|%s|%s", row.Customer.Key(), row.SalesRepID, rowLine(row.Row)), true
	case domain.UpdateRow:
		return fmt.Sprintf("update|%s|%s|%s|%s", row.DebtID, row.OldAmount.String(), row.SalesRepID, rowLine(row.Row)), true
	case domain.SkipRow:
		return fmt.Sprintf("skip|%s|%s", row.DebtID, rowLine(row.Row)), true
	case domain.DeleteRow:
		return fmt.Sprintf("delete|%s|%s", row.Debt.DebtID, row.Debt.RemainingAmount.String()), true
	default:
		return "", false
	}
}

func rowLine(r domain.NormalizedRow) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s", r.DueDate, r.Amount.String(), r.Currency, r.DebtType, r.TransactionDate)
}
