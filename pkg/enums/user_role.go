package enums

// UserRole scopes what an authenticated user may read.
type UserRole string

const (
	UserRoleCustomer UserRole = "CUSTOMER"
	UserRoleVendor   UserRole = "VENDOR"
	UserRoleAdmin    UserRole = "ADMIN"
)

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleCustomer, UserRoleVendor, UserRoleAdmin:
		return true
	}
	return false
}
