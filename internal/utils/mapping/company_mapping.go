package mapping

import (
	"github.com/SscSPs/receivables_app/internal/core/domain"
	"github.com/SscSPs/receivables_app/internal/models"
)

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:       m.CompanyID,
		Name:            m.Name,
		BaseCurrency:    m.BaseCurrency,
		Currencies:      m.Currencies,
		DefaultDebtType: domain.DebtType(m.DefaultDebtType),
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
