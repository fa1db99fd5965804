package domain

import "time"

// Account holds the fields shared by users and admins.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Active       bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Base exposes the shared fields; it is promoted to User and Admin so both
// satisfy AccountRecord.
func (a *Account) Base() *Account {
	return a
}

// AccountRecord is implemented by *User and *Admin.
type AccountRecord interface {
	Base() *Account
}

// Address is a postal address attached to a user profile or an order.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

// IsZero reports whether no address field is set.
func (a Address) IsZero() bool {
	return a == Address{}
}

// User is a storefront customer.
type User struct {
	Account
	Phone   string  `json:"phone,omitempty"`
	Address Address `json:"address"`
}

// Admin is a back-office operator.
type Admin struct {
	Account
	Permissions []string   `json:"permissions"`
	LastLogin   *time.Time `json:"lastLogin,omitempty"`
}

// Permission names granted to admins created through signup. They are stored
// with the account but no route checks them.
const (
	PermissionManageProducts   = "manage_products"
	PermissionManageOrders     = "manage_orders"
	PermissionManageUsers      = "manage_users"
	PermissionViewAnalytics    = "view_analytics"
	PermissionManageCategories = "manage_categories"
)

// DefaultAdminPermissions returns the permission set assigned on admin signup.
func DefaultAdminPermissions() []string {
	return []string{
		PermissionManageProducts,
		PermissionManageOrders,
		PermissionManageUsers,
		PermissionViewAnalytics,
		PermissionManageCategories,
	}
}
