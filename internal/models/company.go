package models

// Company is the companies table row.
type Company struct {
	CompanyID       string   `db:"company_id"`
	Name            string   `db:"name"`
	BaseCurrency    string   `db:"base_currency"`
	Currencies      []string `db:"currencies"`
	DefaultDebtType string   `db:"default_debt_type"`
	IsActive        bool     `db:"is_active"`
	AuditFields
}
