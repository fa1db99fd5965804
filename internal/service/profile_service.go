package service

import (
	"context"
	"errors"

	"github.com/goldendrops/storefront/internal/domain"
	"github.com/goldendrops/storefront/internal/repository"
)

// ProfileUpdate holds the optional profile fields. Nil or empty values leave
// the stored value unchanged.
type ProfileUpdate struct {
	Name    *string
	Phone   *string
	Address *domain.Address
}

// ProfileService manages a signed-in user's own profile.
type ProfileService struct {
	users repository.UserRepository
}

// NewProfileService builds the service.
func NewProfileService(users repository.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

// Update applies the non-empty fields of in to user and persists them.
func (s *ProfileService) Update(ctx context.Context, user *domain.User, in ProfileUpdate) (*domain.User, error) {
	updated := *user
	if in.Name != nil && *in.Name != "" {
		updated.Name = *in.Name
	}
	if in.Phone != nil && *in.Phone != "" {
		updated.Phone = *in.Phone
	}
	if in.Address != nil && !in.Address.IsZero() {
		updated.Address = *in.Address
	}

	if err := s.users.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &updated, nil
}
