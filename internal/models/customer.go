package models

import "database/sql"

// Customer is the customers table row.
type Customer struct {
	CustomerID     string         `db:"customer_id"`
	CompanyID      string         `db:"company_id"`
	Name           string         `db:"name"`
	AssignedUserID sql.NullString `db:"assigned_user_id"` // Nullable
	AuditFields
}
