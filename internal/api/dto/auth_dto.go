package dto

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/goldendrops/storefront/internal/domain"
)

// SignupRequest payload for user and admin signup.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// Normalize trims the free-text fields. Emails are kept as typed.
func (r *SignupRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
}

// Validate checks the payload. bcrypt ignores input past 72 bytes, so longer
// passwords are refused.
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("Name is required"), validation.Length(1, 100)),
		validation.Field(&r.Email, validation.Required.Error("Valid email is required"), is.EmailFormat.Error("Valid email is required")),
		validation.Field(&r.Password, validation.Required.Error("Password must be at least 6 characters"),
			validation.Length(6, 72).Error("Password must be between 6 and 72 characters")),
		validation.Field(&r.Phone, validation.Length(0, 20)),
	)
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("Valid email is required"), is.EmailFormat.Error("Valid email is required")),
		validation.Field(&r.Password, validation.Required.Error("Password is required")),
	)
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone,omitempty"`
	Address   domain.Address `json:"address"`
	Role      domain.Role    `json:"role"`
	Active    bool           `json:"isActive"`
	CreatedAt time.Time      `json:"createdAt"`
}

// NewUserResponse never includes the password hash.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

// NewUserResponses maps a list of users.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = NewUserResponse(&users[i])
	}
	return out
}

// AdminResponse is the public view of an admin.
type AdminResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Role        domain.Role `json:"role"`
	Permissions []string    `json:"permissions"`
	Active      bool        `json:"isActive"`
	LastLogin   *time.Time  `json:"lastLogin,omitempty"`
}

func NewAdminResponse(a *domain.Admin) AdminResponse {
	return AdminResponse{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		Role:        a.Role,
		Permissions: a.Permissions,
		Active:      a.Active,
		LastLogin:   a.LastLogin,
	}
}

// ProfileRequest is a partial profile update.
type ProfileRequest struct {
	Name    *string         `json:"name"`
	Phone   *string         `json:"phone"`
	Address *domain.Address `json:"address"`
}

func (r ProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(0, 100)),
		validation.Field(&r.Phone, validation.Length(0, 20)),
	)
}

// UserStatusRequest toggles a user's active flag.
type UserStatusRequest struct {
	IsActive *bool `json:"isActive"`
}

func (r UserStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.IsActive, validation.NotNil.Error("isActive is required")),
	)
}
