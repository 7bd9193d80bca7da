package mapping

import (
	"github.com/SscSPs/receivables_app/internal/core/domain"
	"github.com/SscSPs/receivables_app/internal/models"
)

// ToModelDebt converts a domain Debt to a model Debt
func ToModelDebt(d domain.Debt) models.Debt {
	return models.Debt{
		DebtID:          d.DebtID,
		CompanyID:       d.CompanyID,
		CustomerID:      d.CustomerID,
		DebtType:        string(d.DebtType),
		CurrencyCode:    d.CurrencyCode,
		OriginalAmount:  d.OriginalAmount,
		RemainingAmount: d.RemainingAmount,
		DueDate:         d.DueDate,
		Status:          string(d.Status),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDebt converts a model Debt to a domain Debt
func ToDomainDebt(m models.Debt) domain.Debt {
	return domain.Debt{
		DebtID:          m.DebtID,
		CompanyID:       m.CompanyID,
		CustomerID:      m.CustomerID,
		DebtType:        domain.DebtType(m.DebtType),
		CurrencyCode:    m.CurrencyCode,
		OriginalAmount:  m.OriginalAmount,
		RemainingAmount: m.RemainingAmount,
		DueDate:         m.DueDate.UTC(),
		Status:          domain.DebtStatus(m.Status),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDebtSlice converts a slice of model Debts to domain Debts
func ToDomainDebtSlice(ms []models.Debt) []domain.Debt {
	ds := make([]domain.Debt, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDebt(m)
	}
	return ds
}
