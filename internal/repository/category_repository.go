package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/goldendrops/storefront/internal/domain"
)

// CategoryRepository persists catalog categories.
type CategoryRepository interface {
	ListActive(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
}

type categoryRepository struct {
	db DB
}

// NewCategoryRepository returns a Postgres-backed implementation.
func NewCategoryRepository(db DB) CategoryRepository {
	return &categoryRepository{db: db}
}

const categoryColumns = `id, name, description, icon, image, bg_color, text_color, is_active, sort_order, created_at, updated_at`

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.Icon,
		&c.Image,
		&c.BgColor,
		&c.TextColor,
		&c.Active,
		&c.Order,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

// ListActive returns active categories by display order.
func (r *categoryRepository) ListActive(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories WHERE is_active ORDER BY sort_order ASC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	return scanCategory(r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id=$1`, id))
}

// Create inserts the category; names are unique.
func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	const query = `
        INSERT INTO categories (id, name, description, icon, image, bg_color, text_color, is_active, sort_order)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING created_at, updated_at`

	if c.ID == "" {
		c.ID = newID()
	}
	err := r.db.QueryRow(ctx, query,
		c.ID,
		c.Name,
		c.Description,
		c.Icon,
		c.Image,
		c.BgColor,
		c.TextColor,
		c.Active,
		c.Order,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	return mapError(err)
}

func (r *categoryRepository) Update(ctx context.Context, c *domain.Category) error {
	const query = `
        UPDATE categories
        SET name=$1, description=$2, icon=$3, image=$4, bg_color=$5, text_color=$6, is_active=$7, sort_order=$8, updated_at=NOW()
        WHERE id=$9
        RETURNING created_at, updated_at`

	if !validID(c.ID) {
		return ErrNotFound
	}
	err := r.db.QueryRow(ctx, query,
		c.Name,
		c.Description,
		c.Icon,
		c.Image,
		c.BgColor,
		c.TextColor,
		c.Active,
		c.Order,
		c.ID,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	return mapError(err)
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
