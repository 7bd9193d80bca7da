package mapping

import (
	"database/sql"

	"github.com/SscSPs/receivables_app/internal/core/domain"
	"github.com/SscSPs/receivables_app/internal/models"
)

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	m := models.Customer{
		CustomerID:  d.CustomerID,
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.AssignedUserID != nil {
		m.AssignedUserID = sql.NullString{String: *d.AssignedUserID, Valid: true}
	}
	return m
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	d := domain.Customer{
		CustomerID:  m.CustomerID,
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.AssignedUserID.Valid {
		assigned := m.AssignedUserID.String
		d.AssignedUserID = &assigned
	}
	return d
}

// ToDomainCustomerSlice converts a slice of model Customers to domain Customers
func ToDomainCustomerSlice(ms []models.Customer) []domain.Customer {
	ds := make([]domain.Customer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCustomer(m)
	}
	return ds
}
