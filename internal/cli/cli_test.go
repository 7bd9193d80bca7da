package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SscSPs/receivables_app/internal/apperrors"
	"github.com/SscSPs/receivables_app/internal/cli"
	"github.com/SscSPs/receivables_app/internal/core/domain"
	portssvc "github.com/SscSPs/receivables_app/internal/core/ports/services"
	"github.com/SscSPs/receivables_app/internal/dto"
	"github.com/SscSPs/receivables_app/internal/middleware"
	"github.com/SscSPs/receivables_app/internal/platform/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock services ---

type MockCompanyService struct {
	mock.Mock
}

func (m *MockCompanyService) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyService) AuthorizeCaller(ctx context.Context, caller domain.Caller, companyID string, roles ...domain.UserRole) error {
	args := m.Called(ctx, caller, companyID, roles)
	return args.Error(0)
}

func (m *MockCompanyService) ResolveCaller(ctx context.Context, userID string) (domain.Caller, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Caller), args.Error(1)
}

type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) Analyze(ctx context.Context, caller domain.Caller, companyID string, rows []domain.ImportRow) (*domain.ReconciliationPlan, error) {
	args := m.Called(ctx, caller, companyID, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciliationPlan), args.Error(1)
}

func (m *MockReconciliationService) Commit(ctx context.Context, caller domain.Caller, companyID string, rows []domain.ImportRow, fingerprint string) (*domain.CommitResult, error) {
	args := m.Called(ctx, caller, companyID, rows, fingerprint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CommitResult), args.Error(1)
}

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) RecordPayment(ctx context.Context, caller domain.Caller, companyID string, req dto.RecordPaymentRequest) (*domain.PaymentAllocationResult, error) {
	args := m.Called(ctx, caller, companyID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentAllocationResult), args.Error(1)
}

var (
	_ portssvc.CompanySvcFacade        = (*MockCompanyService)(nil)
	_ portssvc.ReconciliationSvcFacade = (*MockReconciliationService)(nil)
	_ portssvc.PaymentSvcFacade        = (*MockPaymentService)(nil)
)

// --- Harness ---

var accountant = domain.Caller{UserID: "user-1", CompanyID: "company-1", Role: domain.RoleAccounting}

type harness struct {
	company        *MockCompanyService
	reconciliation *MockReconciliationService
	payment        *MockPaymentService
	opened         int
	closed         int
}

func newHarness() *harness {
	h := &harness{
		company:        new(MockCompanyService),
		reconciliation: new(MockReconciliationService),
		payment:        new(MockPaymentService),
	}
	h.company.On("ResolveCaller", mock.Anything, "user-1").Return(accountant, nil).Maybe()
	h.company.On("ResolveCaller", mock.Anything, "ghost").Return(domain.Caller{}, apperrors.ErrUnauthorized).Maybe()
	return h
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	loadConfig := func() (*config.Config, error) {
		return &config.Config{JWTSecret: "cli-test-secret", JWTIssuer: "receivables-test"}, nil
	}
	open := func(ctx context.Context, cfg *config.Config) (*portssvc.ServiceContainer, func(), error) {
		h.opened++
		return &portssvc.ServiceContainer{
			Company:        h.company,
			Reconciliation: h.reconciliation,
			Payment:        h.payment,
		}, func() { h.closed++ }, nil
	}

	cmd := cli.NewRootCommand(loadConfig, open)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeRows(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rows.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const acmeRows = `{"rows":[{"customerName":"Acme","dueDate":"2024-05-20","amount":15000,"currency":"TRY","debtType":"Cari","salesRepName":"Ahmet Yılmaz"}]}`

func acmePlan(summary domain.PlanSummary) *domain.ReconciliationPlan {
	return &domain.ReconciliationPlan{CompanyID: "company-1", Summary: summary, Fingerprint: "f00d"}
}

// --- Tests ---

func TestAnalyze_PrintsPlan(t *testing.T) {
	h := newHarness()
	h.reconciliation.On("Analyze", mock.Anything, accountant, "company-1", mock.MatchedBy(func(rows []domain.ImportRow) bool {
		return len(rows) == 1 && rows[0].Amount == "15000" && rows[0].CustomerName == "Acme"
	})).Return(acmePlan(domain.PlanSummary{ToCreate: 1}), nil).Once()

	out, err := h.run(t, "analyze", "--company", "company-1", "--user", "user-1", "--file", writeRows(t, acmeRows))

	require.NoError(t, err)
	var resp dto.AnalyzeResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Summary.ToCreate)
	assert.Equal(t, "f00d", resp.Fingerprint)
	assert.Equal(t, 1, h.closed)
	h.reconciliation.AssertExpectations(t)
}

func TestAnalyze_AcceptsBareArray(t *testing.T) {
	h := newHarness()
	h.reconciliation.On("Analyze", mock.Anything, accountant, "company-1", mock.AnythingOfType("[]domain.ImportRow")).
		Return(acmePlan(domain.PlanSummary{ToSkip: 2}), nil).Once()

	path := writeRows(t, `[{"customerName":"A","dueDate":"2024-01-01","amount":"1"},{"customerName":"B","dueDate":"2024-01-01","amount":"2"}]`)
	_, err := h.run(t, "analyze", "--company", "company-1", "--user", "user-1", "-f", path)

	require.NoError(t, err)
	h.reconciliation.AssertExpectations(t)
}

func TestAnalyze_UnknownUser(t *testing.T) {
	h := newHarness()

	_, err := h.run(t, "analyze", "--company", "company-1", "--user", "ghost", "--file", writeRows(t, acmeRows))

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Equal(t, 1, h.closed)
	h.reconciliation.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCommit_RefusesWhenAnalysisHasErrors(t *testing.T) {
	h := newHarness()
	h.reconciliation.On("Analyze", mock.Anything, accountant, "company-1", mock.Anything).
		Return(acmePlan(domain.PlanSummary{ToCreate: 1, Errors: 1}), nil).Once()

	_, err := h.run(t, "commit", "--company", "company-1", "--user", "user-1", "--file", writeRows(t, acmeRows))

	assert.ErrorIs(t, err, cli.ErrAnalysisHasErrors)
	h.reconciliation.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCommit_UsesAnalysisFingerprint(t *testing.T) {
	h := newHarness()
	h.reconciliation.On("Analyze", mock.Anything, accountant, "company-1", mock.Anything).
		Return(acmePlan(domain.PlanSummary{ToCreate: 1}), nil).Once()
	h.reconciliation.On("Commit", mock.Anything, accountant, "company-1", mock.Anything, "f00d").
		Return(&domain.CommitResult{Success: true, Stats: domain.CommitStats{Created: 1}}, nil).Once()

	out, err := h.run(t, "commit", "--company", "company-1", "--user", "user-1", "--file", writeRows(t, acmeRows))

	require.NoError(t, err)
	var resp dto.CommitResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Stats.Created)
	assert.NotNil(t, resp.Errors)
	h.reconciliation.AssertExpectations(t)
}

func TestCommit_ForceWithExplicitFingerprint(t *testing.T) {
	h := newHarness()
	h.reconciliation.On("Commit", mock.Anything, accountant, "company-1", mock.Anything, "abc").
		Return(nil, apperrors.ErrPlanStale).Once()

	_, err := h.run(t, "commit", "--company", "company-1", "--user", "user-1", "--file", writeRows(t, acmeRows),
		"--force", "--fingerprint", "abc")

	assert.ErrorIs(t, err, apperrors.ErrPlanStale)
	h.reconciliation.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCommit_FailedResultExitsNonZero(t *testing.T) {
	h := newHarness()
	h.reconciliation.On("Commit", mock.Anything, accountant, "company-1", mock.Anything, "").
		Return(&domain.CommitResult{Success: false, Errors: []string{"delete 1 debts: timeout"}}, nil).Once()

	out, err := h.run(t, "commit", "--company", "company-1", "--user", "user-1", "--file", writeRows(t, acmeRows), "--force")

	require.Error(t, err)
	assert.Contains(t, out, "delete 1 debts: timeout")
}

func TestPay_RecordsPayment(t *testing.T) {
	h := newHarness()
	h.payment.On("RecordPayment", mock.Anything, accountant, "company-1", mock.MatchedBy(func(req dto.RecordPaymentRequest) bool {
		return req.CustomerID == "cust-1" &&
			req.Amount.Equal(decimal.RequireFromString("150.50")) &&
			req.Currency == "TRY" &&
			req.PaymentDate == "2024-05-02" &&
			req.Method == domain.PaymentCash
	})).Return(&domain.PaymentAllocationResult{
		Payment:        domain.Payment{PaymentID: "pay-1", CustomerID: "cust-1", Amount: decimal.RequireFromString("150.50"), CurrencyCode: "TRY"},
		TotalAllocated: decimal.RequireFromString("150.50"),
		Unallocated:    decimal.Zero,
	}, nil).Once()

	out, err := h.run(t, "pay", "--company", "company-1", "--user", "user-1",
		"--customer", "cust-1", "--amount", "150.50", "--currency", "TRY", "--date", "2024-05-02", "--method", "cash")

	require.NoError(t, err)
	assert.Contains(t, out, `"paymentId": "pay-1"`)
	h.payment.AssertExpectations(t)
}

func TestPay_InvalidInputNeverOpensStore(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero amount", []string{"--amount", "0", "--currency", "TRY"}},
		{"bad amount", []string{"--amount", "abc", "--currency", "TRY"}},
		{"bad currency", []string{"--amount", "10", "--currency", "TL"}},
		{"bad method", []string{"--amount", "10", "--currency", "TRY", "--method", "barter"}},
		{"bad date", []string{"--amount", "10", "--currency", "TRY", "--date", "02.05.2024"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			args := append([]string{"pay", "--company", "company-1", "--user", "user-1", "--customer", "cust-1"}, tt.args...)

			_, err := h.run(t, args...)

			assert.Error(t, err)
			assert.Zero(t, h.opened)
		})
	}
}

func TestMissingRequiredFlags(t *testing.T) {
	h := newHarness()

	_, err := h.run(t, "analyze", "--company", "company-1")

	assert.Error(t, err)
	assert.Zero(t, h.opened)
}

func TestToken_SignsStoredIdentity(t *testing.T) {
	h := newHarness()

	out, err := h.run(t, "token", "--company", "company-1", "--user", "user-1", "--ttl", "1h")

	require.NoError(t, err)
	token := strings.TrimSpace(out)
	claims := &middleware.CallerClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("cli-test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "company-1", claims.CompanyID)
	assert.Equal(t, string(domain.RoleAccounting), claims.Role)
}

func TestToken_RejectsForeignCompany(t *testing.T) {
	h := newHarness()

	_, err := h.run(t, "token", "--company", "company-2", "--user", "user-1")

	assert.Error(t, err)
}
