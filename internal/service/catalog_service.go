package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/goldendrops/storefront/internal/catalog"
	"github.com/goldendrops/storefront/internal/domain"
	"github.com/goldendrops/storefront/internal/repository"
)

// CategoryInput carries category fields. On update, nil fields are kept.
type CategoryInput struct {
	Name        *string
	Description *string
	Icon        *string
	Image       *string
	BgColor     *string
	TextColor   *string
	Active      *bool
	Order       *int
}

// ProductInput carries product fields. On update, nil fields are kept.
type ProductInput struct {
	Name          *string
	Description   *string
	Price         *float64
	OldPrice      *float64
	CategoryID    *string
	Brand         *string
	Size          *string
	Unit          *string
	Images        []string
	InStock       *bool
	StockQuantity *int
	Rating        *float64
	Reviews       *int
	Badge         *string
	Featured      *bool
	Active        *bool
}

// CatalogService serves the public catalog and its admin maintenance.
type CatalogService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	logger     *zap.Logger
}

// NewCatalogService builds the service.
func NewCatalogService(categories repository.CategoryRepository, products repository.ProductRepository, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{categories: categories, products: products, logger: logger}
}

// ListCategories returns active categories in display order.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.ListActive(ctx)
}

func (s *CatalogService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCategoryNotFound
	}
	return c, err
}

// CreateCategory applies the storefront defaults for colours, activity and
// ordering.
func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	c := &domain.Category{
		BgColor:   domain.DefaultCategoryBgColor,
		TextColor: domain.DefaultCategoryTextColor,
		Active:    true,
	}
	in.applyTo(c)

	if err := s.categories.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id string, in CategoryInput) (*domain.Category, error) {
	c, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	in.applyTo(c)

	if err := s.categories.Update(ctx, c); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrCategoryNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrDuplicateCategory
		}
		return nil, err
	}
	return c, nil
}

// DeleteCategory refuses while any product, active or not, references the
// category.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	n, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrCategoryInUse
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

// ListProducts runs a catalog query built from raw parameters.
func (s *CatalogService) ListProducts(ctx context.Context, params catalog.Params) ([]domain.Product, error) {
	return s.products.Search(ctx, catalog.BuildProductQuery(params))
}

// SearchProducts is the free-text shortcut over ListProducts.
func (s *CatalogService) SearchProducts(ctx context.Context, term string) ([]domain.Product, error) {
	return s.ListProducts(ctx, catalog.Params{Search: term})
}

// CategoryProducts lists the active products of a category.
func (s *CatalogService) CategoryProducts(ctx context.Context, categoryID string) ([]domain.Product, error) {
	return s.products.Search(ctx, catalog.ForCategory(categoryID))
}

// GetProduct hides inactive products.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	p := &domain.Product{InStock: true, Active: true, Images: []string{}}
	in.applyTo(p)
	if err := s.requireCategory(ctx, p.CategoryID); err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProduct edits any product, including inactive ones.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	previousCategory := p.CategoryID
	in.applyTo(p)
	if p.CategoryID != previousCategory {
		if err := s.requireCategory(ctx, p.CategoryID); err != nil {
			return nil, err
		}
	}

	if err := s.products.Update(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// DeleteProduct is a soft delete.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	s.logger.Info("product deactivated", zap.String("product_id", id))
	return nil
}

func (s *CatalogService) requireCategory(ctx context.Context, id string) error {
	_, err := s.categories.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUnknownCategory
	}
	return err
}

func (in CategoryInput) applyTo(c *domain.Category) {
	setIf(&c.Name, in.Name)
	setIf(&c.Description, in.Description)
	setIf(&c.Icon, in.Icon)
	setIf(&c.Image, in.Image)
	setIf(&c.BgColor, in.BgColor)
	setIf(&c.TextColor, in.TextColor)
	setIf(&c.Active, in.Active)
	setIf(&c.Order, in.Order)
}

func (in ProductInput) applyTo(p *domain.Product) {
	setIf(&p.Name, in.Name)
	setIf(&p.Description, in.Description)
	setIf(&p.Price, in.Price)
	setIf(&p.OldPrice, in.OldPrice)
	setIf(&p.CategoryID, in.CategoryID)
	setIf(&p.Brand, in.Brand)
	setIf(&p.Size, in.Size)
	setIf(&p.Unit, in.Unit)
	if in.Images != nil {
		p.Images = in.Images
	}
	setIf(&p.InStock, in.InStock)
	setIf(&p.StockQuantity, in.StockQuantity)
	setIf(&p.Rating, in.Rating)
	setIf(&p.Reviews, in.Reviews)
	setIf(&p.Badge, in.Badge)
	setIf(&p.Featured, in.Featured)
	setIf(&p.Active, in.Active)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
