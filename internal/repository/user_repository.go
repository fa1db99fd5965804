package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/goldendrops/storefront/internal/domain"
)

// UserRepository defines persistence access for storefront customers.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.User, error)
	Count(ctx context.Context) (total int64, active int64, err error)
}

type userRepository struct {
	db DB
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, password_hash, phone, address, role, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Phone,
		&user.Address,
		&user.Role,
		&user.Active,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// Create inserts the user; a taken email yields ErrDuplicate.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (id, name, email, password_hash, phone, address, role, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at, updated_at`

	if user.ID == "" {
		user.ID = newID()
	}
	err := r.db.QueryRow(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Phone,
		user.Address,
		user.Role,
		user.Active,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	return mapError(err)
}

// Update persists the profile fields.
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET name=$1, phone=$2, address=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`

	if !validID(user.ID) {
		return ErrNotFound
	}
	err := r.db.QueryRow(ctx, query,
		user.Name,
		user.Phone,
		user.Address,
		user.ID,
	).Scan(&user.UpdatedAt)
	return mapError(err)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

// GetByEmail matches the email exactly as stored.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email))
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// SetActive toggles the active flag and returns the updated row.
func (r *userRepository) SetActive(ctx context.Context, id string, active bool) (*domain.User, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	return scanUser(r.db.QueryRow(ctx,
		`UPDATE users SET is_active=$1, updated_at=NOW() WHERE id=$2 RETURNING `+userColumns,
		active, id,
	))
}

func (r *userRepository) Count(ctx context.Context) (int64, int64, error) {
	const query = `SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM users`

	var total, active int64
	if err := r.db.QueryRow(ctx, query).Scan(&total, &active); err != nil {
		return 0, 0, err
	}
	return total, active, nil
}
