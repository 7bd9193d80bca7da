package domain

import "strings"

// Company is the tenant. Every customer, debt, payment and user belongs to exactly one company.
type Company struct {
	CompanyID       string   `json:"companyID"`       // Primary Key (e.g., UUID)
	Name            string   `json:"name"`            // Display name
	BaseCurrency    string   `json:"baseCurrency"`    // Fallback for unrecognized import currencies (e.g., "TRY")
	Currencies      []string `json:"currencies"`      // Currency codes the company works with
	DefaultDebtType DebtType `json:"defaultDebtType"` // Used when an import debt type matches no synonym
	IsActive        bool     `json:"isActive"`
	AuditFields
}

// SupportsCurrency reports whether code is the base currency or one of the configured currencies.
func (c Company) SupportsCurrency(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return false
	}
	if code == strings.ToUpper(c.BaseCurrency) {
		return true
	}
	for _, cur := range c.Currencies {
		if strings.ToUpper(cur) == code {
			return true
		}
	}
	return false
}
