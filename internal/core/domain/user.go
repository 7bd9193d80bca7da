package domain

import "time"

// UserRole defines the role a user holds inside their company.
type UserRole string

const (
	RoleCompanyAdmin UserRole = "company_admin"
	RoleAccounting   UserRole = "accounting"
	RoleSalesRep     UserRole = "sales_rep"
)

// BulkWriteRoles may commit reconciliations and create/delete debts in bulk.
var BulkWriteRoles = []UserRole{RoleCompanyAdmin, RoleAccounting}

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleCompanyAdmin, RoleAccounting, RoleSalesRep:
		return true
	}
	return false
}

// User represents a user of the application (sales reps included) in the domain.
type User struct {
	UserID    string   `json:"userID"` // Primary Key (e.g., UUID)
	CompanyID string   `json:"companyID"`
	Name      string   `json:"name"` // Display name, used for sales-rep lookup during imports
	Role      UserRole `json:"role"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"` // Used for soft delete
}

// Caller is the authenticated identity on whose behalf an operation runs.
type Caller struct {
	UserID    string
	CompanyID string
	Role      UserRole
}

// HasRole reports whether the caller holds one of roles.
func (c Caller) HasRole(roles ...UserRole) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}
