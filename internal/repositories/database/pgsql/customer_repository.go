package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/receivables_app/internal/apperrors"
	"github.com/SscSPs/receivables_app/internal/core/domain"
	portsrepo "github.com/SscSPs/receivables_app/internal/core/ports/repositories"
	"github.com/SscSPs/receivables_app/internal/models"
	"github.com/SscSPs/receivables_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCustomerRepository struct {
	BaseRepository
}

func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const customerColumns = `customer_id, company_id, name, assigned_user_id, created_at, created_by, last_updated_at, last_updated_by`

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.CompanyID,
		&m.Name,
		&m.AssignedUserID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		INSERT INTO customers (customer_id, company_id, name, assigned_user_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.CompanyID,
		m.Name,
		m.AssignedUserID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("customer %q already exists: %w", customer.Name, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save customer: %w", err)
	}
	return nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, companyID, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + `
		FROM customers
		WHERE company_id = $1 AND customer_id = $2;`

	m, err := scanCustomer(r.Pool.QueryRow(ctx, query, companyID, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by ID %s: %w", customerID, err)
	}

	customer := mapping.ToDomainCustomer(m)
	return &customer, nil
}

func (r *PgxCustomerRepository) ListCustomersByCompany(ctx context.Context, companyID string) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + `
		FROM customers
		WHERE company_id = $1
		ORDER BY created_at ASC, customer_id ASC;`

	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	modelCustomers := []models.Customer{}
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		modelCustomers = append(modelCustomers, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", rows.Err())
	}

	return mapping.ToDomainCustomerSlice(modelCustomers), nil
}
