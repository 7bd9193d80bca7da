package reconcile

import (
	"sort"

	"github.com/SscSPs/receivables_app/internal/core/domain"
)

type matchKey struct {
	customerID string
	dueDate    string
}

// Matcher pairs resolved rows with existing open debts on (customer, due date) and
// remembers which debts were claimed.
type Matcher struct {
	open    []domain.Debt
	byKey   map[matchKey]int
	matched map[string]bool
}

// NewMatcher indexes the open debts of companyID. Debts of other companies and debts that
// are partial or paid never participate. Open debts are expected to have unique
// (customer, due date) pairs; if they do not, the earliest created debt is matched.
func NewMatcher(companyID string, debts []domain.Debt) *Matcher {
	open := make([]domain.Debt, 0, len(debts))
	for _, d := range debts {
		if d.CompanyID == companyID && d.Status == domain.DebtOpen {
			open = append(open, d)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		a, b := open[i], open[j]
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.DebtID < b.DebtID
	})

	m := &Matcher{
		open:    open,
		byKey:   make(map[matchKey]int, len(open)),
		matched: make(map[string]bool),
	}
	for i, d := range open {
		k := matchKey{customerID: d.CustomerID, dueDate: d.DueDateKey()}
		if _, exists := m.byKey[k]; !exists {
			m.byKey[k] = i
		}
	}
	return m
}

// Match returns the open debt for customer and dueDate and marks it matched.
// A pending customer never matches.
func (m *Matcher) Match(customer domain.CustomerRef, dueDate string) (domain.Debt, bool) {
	if customer.IsPending() {
		return domain.Debt{}, false
	}
	i, ok := m.byKey[matchKey{customerID: customer.ID, dueDate: dueDate}]
	if !ok {
		return domain.Debt{}, false
	}
	d := m.open[i]
	m.matched[d.DebtID] = true
	return d, true
}

// Unmatched returns the open debts no row claimed, ordered by due date.
func (m *Matcher) Unmatched() []domain.Debt {
	var out []domain.Debt
	for _, d := range m.open {
		if !m.matched[d.DebtID] {
			out = append(out, d)
		}
	}
	return out
}
