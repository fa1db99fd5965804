package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/goldendrops/storefront/internal/catalog"
	"github.com/goldendrops/storefront/internal/domain"
	"github.com/goldendrops/storefront/internal/observability"
)

// ProductRepository persists products and executes catalog queries.
type ProductRepository interface {
	Search(ctx context.Context, q catalog.ProductQuery) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Deactivate(ctx context.Context, id string) error
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type productRepository struct {
	db DB
}

// NewProductRepository returns a Postgres-backed implementation.
func NewProductRepository(db DB) ProductRepository {
	return &productRepository{db: db}
}

const productSelect = `
        SELECT p.id, p.name, p.description, p.price, p.old_price, p.category_id, COALESCE(c.name, ''),
               p.brand, p.size, p.unit, p.images, p.in_stock, p.stock_quantity, p.rating, p.reviews,
               p.badge, p.featured, p.is_active, p.created_at, p.updated_at
        FROM products p
        LEFT JOIN categories c ON c.id = p.category_id`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.OldPrice,
		&p.CategoryID,
		&p.CategoryName,
		&p.Brand,
		&p.Size,
		&p.Unit,
		&p.Images,
		&p.InStock,
		&p.StockQuantity,
		&p.Rating,
		&p.Reviews,
		&p.Badge,
		&p.Featured,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// renderProductQuery produces the WHERE and ORDER BY for q. It must select
// and order exactly as q.Matches and q.Less do.
func renderProductQuery(q catalog.ProductQuery) (string, []any) {
	args := []any{}
	clauses := []string{}

	if q.ActiveOnly {
		clauses = append(clauses, "p.is_active")
	}
	if q.CategoryID != nil {
		args = append(args, *q.CategoryID)
		clauses = append(clauses, fmt.Sprintf("p.category_id=$%d", len(args)))
	}
	if q.Featured != nil {
		args = append(args, *q.Featured)
		clauses = append(clauses, fmt.Sprintf("p.featured=$%d", len(args)))
	}
	if q.MinPrice != nil {
		args = append(args, *q.MinPrice)
		clauses = append(clauses, fmt.Sprintf("p.price >= $%d", len(args)))
	}
	if q.MaxPrice != nil {
		args = append(args, *q.MaxPrice)
		clauses = append(clauses, fmt.Sprintf("p.price <= $%d", len(args)))
	}
	if q.Search != "" {
		args = append(args, "%"+likeEscaper.Replace(q.Search)+"%")
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			`(p.name ILIKE %[1]s ESCAPE '\' OR p.description ILIKE %[1]s ESCAPE '\' OR p.badge ILIKE %[1]s ESCAPE '\')`,
			placeholder,
		))
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var order string
	switch q.Sort {
	case catalog.SortPriceAsc:
		order = "p.price ASC, "
	case catalog.SortPriceDesc:
		order = "p.price DESC, "
	case catalog.SortRating:
		order = "p.rating DESC, "
	}
	order += "p.created_at DESC, p.id ASC"

	return where + " ORDER BY " + order, args
}

func (r *productRepository) Search(ctx context.Context, q catalog.ProductQuery) (products []domain.Product, err error) {
	ctx, span := observability.StartSpan(ctx, "repository.products.search",
		attribute.String("sort", string(q.Sort)),
		attribute.Bool("search", q.Search != ""),
	)
	defer func() { observability.EndSpan(span, err) }()

	tail, args := renderProductQuery(q)
	rows, err := r.db.Query(ctx, productSelect+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products = []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	span.SetAttributes(attribute.Int("results", len(products)))
	return products, rows.Err()
}

// GetByID returns the product whether or not it is active.
func (r *productRepository) GetByID(ctx context.Context, id string) (product *domain.Product, err error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	ctx, span := observability.StartSpan(ctx, "repository.products.get", attribute.String("product.id", id))
	defer func() { observability.EndSpan(span, err) }()

	return scanProduct(r.db.QueryRow(ctx, productSelect+` WHERE p.id=$1`, id))
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	const query = `
        INSERT INTO products (id, name, description, price, old_price, category_id, brand, size, unit, images,
                              in_stock, stock_quantity, rating, reviews, badge, featured, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
        RETURNING created_at, updated_at`

	if p.ID == "" {
		p.ID = newID()
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	err := r.db.QueryRow(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.OldPrice, p.CategoryID, p.Brand, p.Size, p.Unit, p.Images,
		p.InStock, p.StockQuantity, p.Rating, p.Reviews, p.Badge, p.Featured, p.Active,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return mapError(err)
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	const query = `
        UPDATE products
        SET name=$1, description=$2, price=$3, old_price=$4, category_id=$5, brand=$6, size=$7, unit=$8, images=$9,
            in_stock=$10, stock_quantity=$11, rating=$12, reviews=$13, badge=$14, featured=$15, is_active=$16,
            updated_at=NOW()
        WHERE id=$17
        RETURNING created_at, updated_at`

	if !validID(p.ID) {
		return ErrNotFound
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	err := r.db.QueryRow(ctx, query,
		p.Name, p.Description, p.Price, p.OldPrice, p.CategoryID, p.Brand, p.Size, p.Unit, p.Images,
		p.InStock, p.StockQuantity, p.Rating, p.Reviews, p.Badge, p.Featured, p.Active,
		p.ID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return mapError(err)
}

// Deactivate soft-deletes a product.
func (r *productRepository) Deactivate(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE products SET is_active=FALSE, updated_at=NOW() WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByCategory counts every product referencing the category, active or not.
func (r *productRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	if !validID(categoryID) {
		return 0, nil
	}
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_id=$1`, categoryID).Scan(&n)
	return n, err
}

func (r *productRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE is_active`).Scan(&n)
	return n, err
}
