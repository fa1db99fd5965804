package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldendrops/storefront/internal/catalog"
	"github.com/goldendrops/storefront/internal/config"
	"github.com/goldendrops/storefront/internal/domain"
)

func TestCatalogService_CategoryDefaultsAndOrdering(t *testing.T) {
	f := newFixture(t, config.AuthConfig{})
	ctx := context.Background()

	oils, err := f.catalog.CreateCategory(ctx, CategoryInput{Name: ptr("Oils"), Order: ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCategoryBgColor, oils.BgColor)
	assert.Equal(t, domain.DefaultCategoryTextColor, oils.TextColor)
	assert.True(t, oils.Active)

	_, err = f.catalog.CreateCategory(ctx, CategoryInput{Name: ptr("Spices"), Order: ptr(1)})
	require.NoError(t, err)
	_, err = f.catalog.CreateCategory(ctx, CategoryInput{Name: ptr("Hidden"), Active: ptr(false)})
	require.NoError(t, err)

	_, err = f.catalog.CreateCategory(ctx, CategoryInput{Name: ptr("Oils")})
	assert.ErrorIs(t, err, ErrDuplicateCategory)

	list, err := f.catalog.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Spices", list[0].Name)
	assert.Equal(t, "Oils", list[1].Name)
}

func TestCatalogService_UpdateCategoryKeepsUnsetFields(t *testing.T) {
	f := newFixture(t, config.AuthConfig{})
	ctx := context.Background()
	oils := f.seedCategory(t, "Oils")

	updated, err := f.catalog.UpdateCategory(ctx, oils.ID, CategoryInput{Icon: ptr("🫒")})
	require.NoError(t, err)
	assert.Equal(t, "Oils", updated.Name)
	assert.Equal(t, "🫒", updated.Icon)

	_, err = f.catalog.UpdateCategory(ctx, "missing", CategoryInput{Icon: ptr("x")})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCatalogService_DeleteCategory(t *testing.T) {
	f := newFixture(t, config.AuthConfig{})
	ctx := context.Background()
	oils := f.seedCategory(t, "Oils")
	empty := f.seedCategory(t, "Empty")
	p := f.seedProduct(t, oils.ID, "Groundnut Oil", 1200)

	// Soft-deleted products still block deletion.
	require.NoError(t, f.catalog.DeleteProduct(ctx, p.ID))
	assert.ErrorIs(t, f.catalog.DeleteCategory(ctx, oils.ID), ErrCategoryInUse)

	require.NoError(t, f.catalog.DeleteCategory(ctx, empty.ID))
	assert.ErrorIs(t, f.catalog.DeleteCategory(ctx, empty.ID), ErrCategoryNotFound)
}

func TestCatalogService_Products(t *testing.T) {
	f := newFixture(t, config.AuthConfig{})
	ctx := context.Background()
	oils := f.seedCategory(t, "Oils")

	cheap := f.seedProduct(t, oils.ID, "Mustard Oil", 950)
	mid := f.seedProduct(t, oils.ID, "Groundnut Oil", 1200)
	olive, err := f.catalog.CreateProduct(ctx, ProductInput{
		Name: ptr("Extra Virgin Blend"), Description: ptr("Imported Olive oil"), Price: ptr(1450.0), CategoryID: &oils.ID,
	})
	require.NoError(t, err)
	gone := f.seedProduct(t, oils.ID, "Pomace Oil", 1100)
	require.NoError(t, f.catalog.DeleteProduct(ctx, gone.ID))

	inRange, err := f.catalog.ListProducts(ctx, catalog.Params{MinPrice: "1000", MaxPrice: "1500"})
	require.NoError(t, err)
	assert.Equal(t, []string{olive.ID, mid.ID}, productIDs(inRange))

	found, err := f.catalog.SearchProducts(ctx, "olive")
	require.NoError(t, err)
	assert.Equal(t, []string{olive.ID}, productIDs(found))

	byCategory, err := f.catalog.CategoryProducts(ctx, oils.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{olive.ID, mid.ID, cheap.ID}, productIDs(byCategory))
	assert.Equal(t, "Oils", byCategory[0].CategoryName)

	_, err = f.catalog.GetProduct(ctx, gone.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	got, err := f.catalog.GetProduct(ctx, cheap.ID)
	require.NoError(t, err)
	assert.Equal(t, 950.0, got.Price)
}

func TestCatalogService_ProductCategoryMustExist(t *testing.T) {
	f := newFixture(t, config.AuthConfig{})
	ctx := context.Background()
	oils := f.seedCategory(t, "Oils")
	p := f.seedProduct(t, oils.ID, "Mustard Oil", 950)

	_, err := f.catalog.CreateProduct(ctx, ProductInput{Name: ptr("Ghost"), Price: ptr(1.0), CategoryID: ptr("nope")})
	assert.ErrorIs(t, err, ErrUnknownCategory)

	_, err = f.catalog.UpdateProduct(ctx, p.ID, ProductInput{CategoryID: ptr("nope")})
	assert.ErrorIs(t, err, ErrUnknownCategory)

	updated, err := f.catalog.UpdateProduct(ctx, p.ID, ProductInput{Price: ptr(990.0), Badge: ptr("Sale")})
	require.NoError(t, err)
	assert.Equal(t, 990.0, updated.Price)
	assert.Equal(t, "Mustard Oil", updated.Name)
	assert.Equal(t, "Sale", updated.Badge)
}

func productIDs(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
