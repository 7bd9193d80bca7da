package models

import "time"

// User represents a user of the application.
type User struct {
	UserID    string `db:"user_id"`
	CompanyID string `db:"company_id"`
	Name      string `db:"name"`
	Role      string `db:"role"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
