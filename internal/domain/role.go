package domain

// Role is the privilege level carried by an account and embedded in its tokens.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// AccountVariant names the collection an account lives in. Users and admins
// are separate namespaces; the same email may exist in both.
type AccountVariant string

const (
	VariantUser  AccountVariant = "user"
	VariantAdmin AccountVariant = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// Variant returns the collection accounts with this role are stored in, or
// the empty variant for unknown roles.
func (r Role) Variant() AccountVariant {
	switch r {
	case RoleUser:
		return VariantUser
	case RoleAdmin, RoleSuperAdmin:
		return VariantAdmin
	default:
		return ""
	}
}

// Includes reports whether r grants everything other grants. Every known role
// includes itself and superadmin includes admin. User and admin roles are
// unrelated because they live in different collections.
func (r Role) Includes(other Role) bool {
	if !r.Valid() || !other.Valid() {
		return false
	}
	if r == other {
		return true
	}
	return r == RoleSuperAdmin && other == RoleAdmin
}
