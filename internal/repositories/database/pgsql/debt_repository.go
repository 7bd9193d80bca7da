package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/receivables_app/internal/apperrors"
	"github.com/SscSPs/receivables_app/internal/core/domain"
	portsrepo "github.com/SscSPs/receivables_app/internal/core/ports/repositories"
	"github.com/SscSPs/receivables_app/internal/models"
	"github.com/SscSPs/receivables_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDebtRepository struct {
	BaseRepository
}

// newPgxDebtRepository creates a new repository for debt data.
func newPgxDebtRepository(pool *pgxpool.Pool) portsrepo.DebtRepositoryFacade {
	return &PgxDebtRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DebtRepositoryFacade = (*PgxDebtRepository)(nil)

const debtColumns = `debt_id, company_id, customer_id, debt_type, currency_code, original_amount, remaining_amount,
		due_date, status, created_at, created_by, last_updated_at, last_updated_by`

// cascadeQueries remove the rows that reference a debt. No foreign key cascade is assumed.
var cascadeQueries = []string{
	`DELETE FROM debt_notes WHERE debt_id = ANY($1);`,
	`DELETE FROM payment_promises WHERE debt_id = ANY($1);`,
	`DELETE FROM payments WHERE debt_id = ANY($1);`,
}

func (r *PgxDebtRepository) queryDebts(ctx context.Context, query string, args ...any) ([]domain.Debt, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query debts: %w", err)
	}
	defer rows.Close()

	modelDebts := []models.Debt{}
	for rows.Next() {
		var m models.Debt
		err := rows.Scan(
			&m.DebtID,
			&m.CompanyID,
			&m.CustomerID,
			&m.DebtType,
			&m.CurrencyCode,
			&m.OriginalAmount,
			&m.RemainingAmount,
			&m.DueDate,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt row: %w", err)
		}
		modelDebts = append(modelDebts, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating debt rows: %w", rows.Err())
	}

	return mapping.ToDomainDebtSlice(modelDebts), nil
}

func (r *PgxDebtRepository) ListOpenDebtsByCompany(ctx context.Context, companyID string) ([]domain.Debt, error) {
	query := `SELECT ` + debtColumns + `
		FROM debts
		WHERE company_id = $1 AND status = $2
		ORDER BY due_date ASC, created_at ASC, debt_id ASC;`
	return r.queryDebts(ctx, query, companyID, string(domain.DebtOpen))
}

func (r *PgxDebtRepository) ListAllocatableDebts(ctx context.Context, companyID, customerID, currencyCode string) ([]domain.Debt, error) {
	query := `SELECT ` + debtColumns + `
		FROM debts
		WHERE company_id = $1 AND customer_id = $2 AND currency_code = $3 AND remaining_amount > 0
		ORDER BY due_date ASC, created_at ASC, debt_id ASC;`
	return r.queryDebts(ctx, query, companyID, customerID, currencyCode)
}

func (r *PgxDebtRepository) SaveDebt(ctx context.Context, debt domain.Debt) error {
	m := mapping.ToModelDebt(debt)
	query := `
		INSERT INTO debts (` + debtColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DebtID,
		m.CompanyID,
		m.CustomerID,
		m.DebtType,
		m.CurrencyCode,
		m.OriginalAmount,
		m.RemainingAmount,
		m.DueDate,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("debt %s already exists: %w", debt.DebtID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save debt: %w", err)
	}
	return nil
}

func (r *PgxDebtRepository) UpdateDebtAmounts(ctx context.Context, debt domain.Debt) error {
	m := mapping.ToModelDebt(debt)
	query := `
		UPDATE debts
		SET original_amount = $1, remaining_amount = $2, currency_code = $3, debt_type = $4, status = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE debt_id = $8 AND company_id = $9 AND status = $10;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.OriginalAmount,
		m.RemainingAmount,
		m.CurrencyCode,
		m.DebtType,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.DebtID,
		m.CompanyID,
		string(domain.DebtOpen),
	)
	if err != nil {
		return fmt.Errorf("failed to execute update debt query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("debt %s is missing or no longer open: %w", debt.DebtID, apperrors.ErrConflict)
	}
	return nil
}

// UpdateDebtBalances writes the new remaining amounts and statuses inside one transaction.
// Each row is guarded on the balance it was computed from.
func (r *PgxDebtRepository) UpdateDebtBalances(ctx context.Context, updates []domain.DebtBalanceUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	query := `
		UPDATE debts
		SET remaining_amount = $1, status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE debt_id = $5 AND company_id = $6 AND remaining_amount = $7;
	`
	batch := &pgx.Batch{}
	for _, u := range updates {
		m := mapping.ToModelDebt(u.Debt)
		batch.Queue(query, m.RemainingAmount, m.Status, m.LastUpdatedAt, m.LastUpdatedBy, m.DebtID, m.CompanyID, u.PreviousRemaining)
	}

	br := tx.SendBatch(ctx, batch)
	for _, u := range updates {
		cmdTag, err := br.Exec()
		if err != nil {
			_ = br.Close()
			return apperrors.NewAppError(500, "failed to update balance of debt "+u.Debt.DebtID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			_ = br.Close()
			return fmt.Errorf("debt %s changed since it was read: %w", u.Debt.DebtID, apperrors.ErrConflict)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute debt balance batch", err)
	}

	return r.Commit(ctx, tx)
}

// DeleteDebtsCascade removes dependants first and then the debts, in one round trip.
func (r *PgxDebtRepository) DeleteDebtsCascade(ctx context.Context, companyID string, debtIDs []string) (int, error) {
	if len(debtIDs) == 0 {
		return 0, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx) // no-op once committed

	batch := &pgx.Batch{}
	for _, q := range cascadeQueries {
		batch.Queue(q, debtIDs)
	}
	batch.Queue(`DELETE FROM debts WHERE company_id = $1 AND debt_id = ANY($2);`, companyID, debtIDs)

	br := tx.SendBatch(ctx, batch)
	for range cascadeQueries {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return 0, apperrors.NewAppError(500, "failed to delete debt dependants", err)
		}
	}
	cmdTag, err := br.Exec()
	if err != nil {
		_ = br.Close()
		return 0, apperrors.NewAppError(500, "failed to delete debts", err)
	}
	if err := br.Close(); err != nil {
		return 0, apperrors.NewAppError(500, "failed to execute debt delete batch", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}
