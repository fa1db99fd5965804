package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/goldendrops/storefront/internal/domain"
)

// OrderStats aggregates orders for the admin dashboard.
type OrderStats struct {
	Total   int64
	Pending int64
	Revenue float64
}

// OrderRepository persists customer orders. Items and the shipping address are
// stored as JSONB snapshots.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	Stats(ctx context.Context) (OrderStats, error)
}

type orderRepository struct {
	db DB
}

// NewOrderRepository returns a Postgres-backed implementation.
func NewOrderRepository(db DB) OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, user_id, items, total, status, shipping_address, created_at, updated_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.Items,
		&o.Total,
		&o.Status,
		&o.ShippingAddress,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	const query = `
        INSERT INTO orders (id, user_id, items, total, status, shipping_address)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at, updated_at`

	if o.ID == "" {
		o.ID = newID()
	}
	err := r.db.QueryRow(ctx, query,
		o.ID,
		o.UserID,
		o.Items,
		o.Total,
		o.Status,
		o.ShippingAddress,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	return mapError(err)
}

// ListByUser returns the user's orders, newest first.
func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	if !validID(userID) {
		return []domain.Order{}, nil
	}
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`, userID)
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	return scanOrder(r.db.QueryRow(ctx,
		`UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2 RETURNING `+orderColumns,
		status, id,
	))
}

// Stats counts all orders, pending orders and revenue from orders that were
// not cancelled.
func (r *orderRepository) Stats(ctx context.Context) (OrderStats, error) {
	const query = `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status = 'pending'),
               COALESCE(SUM(total) FILTER (WHERE status <> 'cancelled'), 0)::float8
        FROM orders`

	var s OrderStats
	err := r.db.QueryRow(ctx, query).Scan(&s.Total, &s.Pending, &s.Revenue)
	return s, err
}
