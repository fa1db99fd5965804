package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/goldendrops/storefront/internal/domain"
)

// AdminRepository handles persistence for back-office accounts. Admin emails
// are unique among admins only.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByID(ctx context.Context, id string) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

type adminRepository struct {
	db DB
}

// NewAdminRepository instantiates the repository.
func NewAdminRepository(db DB) AdminRepository {
	return &adminRepository{db: db}
}

const adminColumns = `id, name, email, password_hash, role, permissions, is_active, last_login, created_at, updated_at`

func scanAdmin(row pgx.Row) (*domain.Admin, error) {
	var admin domain.Admin
	if err := row.Scan(
		&admin.ID,
		&admin.Name,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Role,
		&admin.Permissions,
		&admin.Active,
		&admin.LastLogin,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &admin, nil
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	const query = `
        INSERT INTO admins (id, name, email, password_hash, role, permissions, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING created_at, updated_at`

	if admin.ID == "" {
		admin.ID = newID()
	}
	if admin.Permissions == nil {
		admin.Permissions = []string{}
	}
	err := r.db.QueryRow(ctx, query,
		admin.ID,
		admin.Name,
		admin.Email,
		admin.PasswordHash,
		admin.Role,
		admin.Permissions,
		admin.Active,
	).Scan(&admin.CreatedAt, &admin.UpdatedAt)
	return mapError(err)
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	return scanAdmin(r.db.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE id=$1`, id))
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return scanAdmin(r.db.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins WHERE email=$1`, email))
}

func (r *adminRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	if !validID(id) {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE admins SET last_login=$1, updated_at=NOW() WHERE id=$2`, at, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
