package reconcile_test

import (
	"testing"
	"time"

	"github.com/SscSPs/receivables_app/internal/core/domain"
	"github.com/SscSPs/receivables_app/internal/core/reconcile"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCompanyID = "company-1"

var testNow = time.Date(2024, time.April, 1, 9, 0, 0, 0, time.UTC)

func testSnapshot() domain.ReconciliationSnapshot {
	return domain.ReconciliationSnapshot{
		Company: domain.Company{
			CompanyID:    testCompanyID,
			Name:         "Test Co",
			BaseCurrency: "TRY",
			Currencies:   []string{"USD", "EUR"},
			IsActive:     true,
		},
		Users: []domain.User{
			{UserID: "user-ahmet", CompanyID: testCompanyID, Name: "Ahmet Yılmaz", Role: domain.RoleSalesRep},
			{UserID: "user-ayse", CompanyID: testCompanyID, Name: "Ayşe Kaya", Role: domain.RoleSalesRep},
			{UserID: "user-other", CompanyID: "company-2", Name: "Unknown Person", Role: domain.RoleSalesRep},
		},
		Customers: []domain.Customer{
			{CustomerID: "cust-acme", CompanyID: testCompanyID, Name: "Acme"},
			{CustomerID: "cust-beta", CompanyID: testCompanyID, Name: "Beta Ltd"},
		},
	}
}

func openDebt(id, customerID, due string, remaining int64) domain.Debt {
	d, err := time.Parse(domain.DueDateLayout, due)
	if err != nil {
		panic(err)
	}
	amount := decimal.NewFromInt(remaining)
	return domain.Debt{
		DebtID:          id,
		CompanyID:       testCompanyID,
		CustomerID:      customerID,
		DebtType:        domain.DebtTypeCurrentAccount,
		CurrencyCode:    "TRY",
		OriginalAmount:  amount,
		RemainingAmount: amount,
		DueDate:         d,
		Status:          domain.DebtOpen,
		AuditFields:     domain.NewAuditFields("user-admin", testNow),
	}
}

func acmeRow(amount string) domain.ImportRow {
	return domain.ImportRow{
		CustomerName: "Acme",
		DueDate:      "2024-05-20",
		Amount:       amount,
		Currency:     "TRY",
		DebtType:     "Cari",
		SalesRepName: "Ahmet Yılmaz",
	}
}

func TestAnalyze_AcmeScenarios(t *testing.T) {
	t.Run("create against empty debt set", func(t *testing.T) {
		plan := reconcile.Analyze(testSnapshot(), []domain.ImportRow{acmeRow("15000")})

		require.Len(t, plan.Rows, 1)
		create, ok := plan.Rows[0].(domain.CreateRow)
		require.True(t, ok, "expected create, got %s", plan.Rows[0].Status())
		assert.Equal(t, 0, create.SourceIndex())
		assert.Equal(t, "cust-acme", create.Customer.ID)
		assert.False(t, create.Customer.IsPending())
		assert.Equal(t, "user-ahmet", create.SalesRepID)
		assert.Equal(t, domain.DebtTypeCurrentAccount, create.Row.DebtType)
		assert.Equal(t, domain.PlanSummary{ToCreate: 1}, plan.Summary)
	})

	t.Run("skip when remaining equals amount", func(t *testing.T) {
		snap := testSnapshot()
		snap.OpenDebts = []domain.Debt{openDebt("debt-1", "cust-acme", "2024-05-20", 15000)}

		plan := reconcile.Analyze(snap, []domain.ImportRow{acmeRow("15000.00")})

		require.Len(t, plan.Rows, 1)
		skip, ok := plan.Rows[0].(domain.SkipRow)
		require.True(t, ok, "expected skip, got %s", plan.Rows[0].Status())
		assert.Equal(t, "debt-1", skip.DebtID)
		assert.Equal(t, domain.PlanSummary{ToSkip: 1}, plan.Summary)
	})

	t.Run("update when remaining differs", func(t *testing.T) {
		snap := testSnapshot()
		snap.OpenDebts = []domain.Debt{openDebt("debt-1", "cust-acme", "2024-05-20", 10000)}

		plan := reconcile.Analyze(snap, []domain.ImportRow{acmeRow("15000")})

		require.Len(t, plan.Rows, 1)
		update, ok := plan.Rows[0].(domain.UpdateRow)
		require.True(t, ok, "expected update, got %s", plan.Rows[0].Status())
		assert.Equal(t, "debt-1", update.DebtID)
		assert.Equal(t, "10000 -> 15000", update.Message())
		assert.Equal(t, domain.PlanSummary{ToUpdate: 1}, plan.Summary)
	})
}

func TestAnalyze_UnknownSalesRep(t *testing.T) {
	rows := []domain.ImportRow{
		acmeRow("15000"),
		{CustomerName: "Beta Ltd", DueDate: "2024-06-01", Amount: "500", SalesRepName: "Unknown Person"},
		{CustomerName: "Beta Ltd", DueDate: "2024-07-01", Amount: "700", SalesRepName: "ayşe kaya"},
	}

	plan := reconcile.Analyze(testSnapshot(), rows)

	require.Len(t, plan.Rows, 3)
	errRow, ok := plan.Rows[1].(domain.ErrorRow)
	require.True(t, ok)
	assert.Equal(t, domain.ErrCodeSalesRepNotFound, errRow.Code)
	assert.Equal(t, 1, errRow.SourceIndex())
	require.NotNil(t, errRow.Row)
	assert.Equal(t, "Unknown Person", errRow.Row.SalesRepName)

	assert.Equal(t, domain.RowCreate, plan.Rows[0].Status())
	assert.Equal(t, domain.RowCreate, plan.Rows[2].Status())
	assert.Equal(t, domain.PlanSummary{ToCreate: 2, Errors: 1}, plan.Summary)
}

func TestAnalyze_ValidationErrorsDoNotAbortBatch(t *testing.T) {
	rows := []domain.ImportRow{
		{CustomerName: "", DueDate: "2024-05-20", Amount: "10", SalesRepName: "Ahmet Yılmaz"},
		{CustomerName: "Acme", DueDate: "tomorrow", Amount: "10", SalesRepName: "Ahmet Yılmaz"},
		{CustomerName: "Acme", DueDate: "2024-05-20", Amount: "0", SalesRepName: "Ahmet Yılmaz"},
		acmeRow("15000"),
	}

	plan := reconcile.Analyze(testSnapshot(), rows)

	require.Len(t, plan.Rows, 4)
	codes := []domain.RowErrorCode{}
	for _, r := range plan.Rows[:3] {
		e, ok := r.(domain.ErrorRow)
		require.True(t, ok)
		assert.Nil(t, e.Row)
		codes = append(codes, e.Code)
	}
	assert.Equal(t, []domain.RowErrorCode{
		domain.ErrCodeCustomerNameEmpty,
		domain.ErrCodeInvalidDate,
		domain.ErrCodeInvalidAmount,
	}, codes)
	assert.Equal(t, domain.RowCreate, plan.Rows[3].Status())
	assert.Equal(t, 3, plan.Summary.Errors)
}

func TestAnalyze_DeleteSetIsUnmatchedOpenDebts(t *testing.T) {
	snap := testSnapshot()
	partial := openDebt("debt-partial", "cust-beta", "2024-03-01", 300)
	partial.OriginalAmount = decimal.NewFromInt(500)
	partial.Status = domain.DebtPartial
	foreign := openDebt("debt-foreign", "cust-x", "2024-03-01", 300)
	foreign.CompanyID = "company-2"

	snap.OpenDebts = []domain.Debt{
		openDebt("debt-keep", "cust-acme", "2024-05-20", 15000),
		openDebt("debt-gone-2", "cust-beta", "2024-09-01", 800),
		openDebt("debt-gone-1", "cust-acme", "2024-08-01", 100),
		partial,
		foreign,
	}

	plan := reconcile.Analyze(snap, []domain.ImportRow{acmeRow("15000")})

	var deleted []string
	for _, r := range plan.Rows {
		if d, ok := r.(domain.DeleteRow); ok {
			assert.Equal(t, -1, d.SourceIndex())
			deleted = append(deleted, d.Debt.DebtID)
		}
	}
	assert.Equal(t, []string{"debt-gone-1", "debt-gone-2"}, deleted)
	assert.Equal(t, domain.PlanSummary{ToSkip: 1, ToDelete: 2}, plan.Summary)

	last := plan.Rows[len(plan.Rows)-1].(domain.DeleteRow)
	assert.Equal(t, "Beta Ltd", last.CustomerName)
}

func TestAnalyze_PendingCustomerSharedWithinBatch(t *testing.T) {
	rows := []domain.ImportRow{
		{CustomerName: "Gamma Yapı", DueDate: "2024-05-01", Amount: "100", SalesRepName: "Ahmet Yılmaz"},
		{CustomerName: "  GAMMA YAPI ", DueDate: "2024-06-01", Amount: "200", SalesRepName: "Ahmet Yılmaz"},
	}

	plan := reconcile.Analyze(testSnapshot(), rows)

	require.Len(t, plan.Rows, 2)
	first := plan.Rows[0].(domain.CreateRow)
	second := plan.Rows[1].(domain.CreateRow)
	assert.True(t, first.Customer.IsPending())
	assert.Empty(t, first.Customer.ID)
	assert.Equal(t, first.Customer, second.Customer)
	assert.Equal(t, "Gamma Yapı", first.Customer.Name)
}

func TestAnalyze_PendingCustomerNeverMatches(t *testing.T) {
	snap := testSnapshot()
	snap.OpenDebts = []domain.Debt{openDebt("debt-1", "", "2024-05-20", 100)}

	plan := reconcile.Analyze(snap, []domain.ImportRow{
		{CustomerName: "Nobody", DueDate: "2024-05-20", Amount: "100", SalesRepName: "Ahmet Yılmaz"},
	})

	assert.Equal(t, domain.PlanSummary{ToCreate: 1, ToDelete: 1}, plan.Summary)
}

func TestAnalyze_IsDeterministic(t *testing.T) {
	snap := testSnapshot()
	snap.OpenDebts = []domain.Debt{
		openDebt("debt-1", "cust-acme", "2024-05-20", 10000),
		openDebt("debt-2", "cust-beta", "2024-06-01", 500),
		openDebt("debt-3", "cust-beta", "2024-07-01", 900),
	}
	rows := []domain.ImportRow{
		acmeRow("15000"),
		{CustomerName: "Beta Ltd", DueDate: "01.06.2024", Amount: "500", SalesRepName: "Ayşe Kaya"},
		{CustomerName: "New Customer", DueDate: "2024-10-10", Amount: "1.250,00", Currency: "usd", DebtType: "Çek", SalesRepName: "Ayşe Kaya"},
		{CustomerName: "Beta Ltd", DueDate: "2024-12-01", Amount: "1", SalesRepName: "Unknown Person"},
	}

	first := reconcile.Analyze(snap, rows)
	second := reconcile.Analyze(snap, rows)

	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.Rows, second.Rows)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.Equal(t, domain.PlanSummary{ToCreate: 1, ToUpdate: 1, ToSkip: 1, ToDelete: 1, Errors: 1}, first.Summary)
}

func TestAnalyze_ReanalyzeAfterCommitIsAllSkip(t *testing.T) {
	snap := testSnapshot()
	snap.OpenDebts = []domain.Debt{
		openDebt("debt-1", "cust-acme", "2024-05-20", 10000),
		openDebt("debt-stale", "cust-beta", "2024-01-01", 50),
	}
	rows := []domain.ImportRow{
		acmeRow("15000"),
		{CustomerName: "Beta Ltd", DueDate: "2024-06-01", Amount: "500", SalesRepName: "Ayşe Kaya"},
		{CustomerName: "Delta", DueDate: "2024-06-15", Amount: "75.5", SalesRepName: "Ayşe Kaya"},
	}

	plan := reconcile.Analyze(snap, rows)
	applied := applyPlan(t, snap, plan)

	again := reconcile.Analyze(applied, rows)
	assert.Equal(t, domain.PlanSummary{ToSkip: 3}, again.Summary)
}

func TestAnalyze_EchoedRowsKeepAmounts(t *testing.T) {
	snap := testSnapshot()
	first := reconcile.Analyze(snap, []domain.ImportRow{acmeRow("1,234.567")})
	require.Len(t, first.Rows, 1)
	create, ok := first.Rows[0].(domain.CreateRow)
	require.True(t, ok)
	require.True(t, decimal.RequireFromString("1234.567").Equal(create.Row.Amount))

	echoed := acmeRow(create.Row.Amount.String())
	echoed.DueDate = create.Row.DueDate
	echoed.DebtType = string(create.Row.DebtType)
	again := reconcile.Analyze(snap, []domain.ImportRow{echoed})

	assert.Equal(t, first.Fingerprint, again.Fingerprint)
	recreated, ok := again.Rows[0].(domain.CreateRow)
	require.True(t, ok)
	assert.True(t, create.Row.Amount.Equal(recreated.Row.Amount), "round trip changed amount: %s", recreated.Row.Amount)
}

func TestFingerprint_ChangesWhenStoreDrifts(t *testing.T) {
	snap := testSnapshot()
	snap.OpenDebts = []domain.Debt{openDebt("debt-1", "cust-acme", "2024-05-20", 10000)}
	rows := []domain.ImportRow{acmeRow("15000")}

	before := reconcile.Analyze(snap, rows)
	snap.OpenDebts[0].RemainingAmount = decimal.NewFromInt(9000)
	after := reconcile.Analyze(snap, rows)

	assert.NotEqual(t, before.Fingerprint, after.Fingerprint)
}

func TestFingerprint_IgnoresErrorRows(t *testing.T) {
	snap := testSnapshot()
	valid := acmeRow("15000")
	invalid := domain.ImportRow{CustomerName: "Acme", DueDate: "2024-06-01", Amount: "1", SalesRepName: "Unknown Person"}

	withErrors := reconcile.Analyze(snap, []domain.ImportRow{invalid, valid})
	committable := reconcile.Analyze(snap, []domain.ImportRow{valid})

	assert.Equal(t, withErrors.Fingerprint, committable.Fingerprint)
}

// applyPlan mimics a successful commit against an in-memory snapshot.
func applyPlan(t *testing.T, snap domain.ReconciliationSnapshot, plan domain.ReconciliationPlan) domain.ReconciliationSnapshot {
	t.Helper()
	out := snap
	out.Customers = append([]domain.Customer(nil), snap.Customers...)
	debts := map[string]domain.Debt{}
	var order []string
	for _, d := range snap.OpenDebts {
		debts[d.DebtID] = d
		order = append(order, d.DebtID)
	}
	created := map[string]string{}

	for _, r := range plan.Rows {
		switch row := r.(type) {
		case domain.CreateRow:
			customerID := row.Customer.ID
			if row.Customer.IsPending() {
				if id, ok := created[row.Customer.Key()]; ok {
					customerID = id
				} else {
					customerID = "cust-new-" + row.Customer.Name
					created[row.Customer.Key()] = customerID
					out.Customers = append(out.Customers, domain.Customer{CustomerID: customerID, CompanyID: testCompanyID, Name: row.Customer.Name})
				}
			}
			d := openDebt("debt-new-"+row.Row.DueDate, customerID, row.Row.DueDate, 0)
			d.OriginalAmount = row.Row.Amount
			d.RemainingAmount = row.Row.Amount
			debts[d.DebtID] = d
			order = append(order, d.DebtID)
		case domain.UpdateRow:
			d := debts[row.DebtID]
			d.OriginalAmount = row.Row.Amount
			d.RemainingAmount = row.Row.Amount
			debts[row.DebtID] = d
		case domain.DeleteRow:
			delete(debts, row.Debt.DebtID)
		}
	}

	out.OpenDebts = nil
	for _, id := range order {
		if d, ok := debts[id]; ok {
			out.OpenDebts = append(out.OpenDebts, d)
		}
	}
	return out
}
