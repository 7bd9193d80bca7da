package services

import (
	portsrepo "github.com/SscSPs/receivables_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/receivables_app/internal/core/ports/services"
	"github.com/SscSPs/receivables_app/internal/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, m *metrics.Metrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Company service first since the others authorize through it
	container.Company = NewCompanyService(repos.CompanyRepo, repos.UserRepo)
	authorizer := container.Company.(portssvc.CompanyAuthorizerSvc)

	container.Reconciliation = NewReconciliationService(
		repos.CompanyRepo,
		repos.UserRepo,
		repos.CustomerRepo,
		repos.DebtRepo,
		WithAuthorizer(authorizer),
		WithMetrics(m),
	)

	container.Payment = NewPaymentService(
		repos.CompanyRepo,
		repos.CustomerRepo,
		repos.DebtRepo,
		repos.PaymentRepo,
		WithAuthorizer(authorizer),
		WithMetrics(m),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CompanySvcFacade        = (*companyService)(nil)
	_ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)
	_ portssvc.PaymentSvcFacade        = (*paymentService)(nil)
)
