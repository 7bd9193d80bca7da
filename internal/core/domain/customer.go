package domain

// Customer is a debtor of the company.
type Customer struct {
	CustomerID     string  `json:"customerID"` // Primary Key (e.g., UUID)
	CompanyID      string  `json:"companyID"`
	Name           string  `json:"name"`
	AssignedUserID *string `json:"assignedUserID"` // Owning sales rep, nullable
	AuditFields
}
