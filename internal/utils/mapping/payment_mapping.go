package mapping

import (
	"github.com/SscSPs/receivables_app/internal/core/domain"
	"github.com/SscSPs/receivables_app/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:    d.PaymentID,
		CompanyID:    d.CompanyID,
		CustomerID:   d.CustomerID,
		Amount:       d.Amount,
		CurrencyCode: d.CurrencyCode,
		PaymentDate:  d.PaymentDate,
		Method:       string(d.Method),
		Reference:    d.Reference,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}
