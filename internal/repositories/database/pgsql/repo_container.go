package pgsql

import (
	portsrepo "github.com/SscSPs/receivables_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CompanyRepo:  newPgxCompanyRepository(dbPool),
		UserRepo:     newPgxUserRepository(dbPool),
		CustomerRepo: newPgxCustomerRepository(dbPool),
		DebtRepo:     newPgxDebtRepository(dbPool),
		PaymentRepo:  newPgxPaymentRepository(dbPool),
	}
}
