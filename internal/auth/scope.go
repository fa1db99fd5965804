package auth

import "github.com/goldendrops/storefront/internal/domain"

// Scope is a capability level enforced by the guard: which role a token must
// include and which collection the account is loaded from.
type Scope struct {
	Name     string
	Requires domain.Role
	Variant  domain.AccountVariant

	roleMessage    string
	accountMessage string
}

var (
	// UserScope admits only the user role and loads from the users collection.
	UserScope = Scope{
		Name:           "user",
		Requires:       domain.RoleUser,
		Variant:        domain.RoleUser.Variant(),
		roleMessage:    "Access denied. User authentication required.",
		accountMessage: "User account is inactive or not found.",
	}
	// AdminScope admits admin and superadmin and loads from the admins
	// collection. There is no superadmin-only scope.
	AdminScope = Scope{
		Name:           "admin",
		Requires:       domain.RoleAdmin,
		Variant:        domain.RoleAdmin.Variant(),
		roleMessage:    "Access denied. Admin privileges required.",
		accountMessage: "Admin account is inactive or not found.",
	}
)

// Admits reports whether a token carrying role may pass this scope.
func (s Scope) Admits(role domain.Role) bool {
	return role.Includes(s.Requires)
}
