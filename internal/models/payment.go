package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the payments table row. DebtID is set only for payments recorded against
// a single debt by the surrounding application; allocated payments leave it null.
type Payment struct {
	PaymentID    string          `db:"payment_id"`
	CompanyID    string          `db:"company_id"`
	CustomerID   string          `db:"customer_id"`
	DebtID       sql.NullString  `db:"debt_id"`
	Amount       decimal.Decimal `db:"amount"`
	CurrencyCode string          `db:"currency_code"`
	PaymentDate  time.Time       `db:"payment_date"`
	Method       string          `db:"method"`
	Reference    string          `db:"reference"`
	AuditFields
}
