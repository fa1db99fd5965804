package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/goldendrops/storefront/internal/auth"
	"github.com/goldendrops/storefront/internal/domain"
)

// CredentialStore resolves accounts for the access guard and the login flows
// from the users and admins tables.
type CredentialStore struct {
	users  UserRepository
	admins AdminRepository
}

var _ auth.CredentialStore = (*CredentialStore)(nil)

// NewCredentialStore builds a store over both account repositories.
func NewCredentialStore(users UserRepository, admins AdminRepository) *CredentialStore {
	return &CredentialStore{users: users, admins: admins}
}

func (s *CredentialStore) FindAccountByID(ctx context.Context, id string, variant domain.AccountVariant) (domain.AccountRecord, error) {
	switch variant {
	case domain.VariantUser:
		user, err := s.users.GetByID(ctx, id)
		if err != nil || user == nil {
			return nil, absentAsNil(err)
		}
		return user, nil
	case domain.VariantAdmin:
		admin, err := s.admins.GetByID(ctx, id)
		if err != nil || admin == nil {
			return nil, absentAsNil(err)
		}
		return admin, nil
	default:
		return nil, fmt.Errorf("unknown account variant %q", variant)
	}
}

func (s *CredentialStore) FindAccountByEmail(ctx context.Context, email string, variant domain.AccountVariant) (domain.AccountRecord, error) {
	switch variant {
	case domain.VariantUser:
		user, err := s.users.GetByEmail(ctx, email)
		if err != nil || user == nil {
			return nil, absentAsNil(err)
		}
		return user, nil
	case domain.VariantAdmin:
		admin, err := s.admins.GetByEmail(ctx, email)
		if err != nil || admin == nil {
			return nil, absentAsNil(err)
		}
		return admin, nil
	default:
		return nil, fmt.Errorf("unknown account variant %q", variant)
	}
}

// absentAsNil hides ErrNotFound so a missing account reads as (nil, nil).
func absentAsNil(err error) error {
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
