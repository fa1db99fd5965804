package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldendrops/storefront/internal/config"
	"github.com/goldendrops/storefront/internal/domain"
	"github.com/goldendrops/storefront/internal/events"
)

func TestOrderService_PlaceOrder(t *testing.T) {
	f := newFixture(t, config.AuthConfig{})
	ctx := context.Background()
	oils := f.seedCategory(t, "Oils")
	groundnut := f.seedProduct(t, oils.ID, "Groundnut Oil", 1200)
	mustard := f.seedProduct(t, oils.ID, "Mustard Oil", 333.33)

	s, err := f.auth.SignupUser(ctx, SignupInput{Name: "Asha", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	user := s.User
	user.Address = domain.Address{City: "Pune", Country: "IN"}

	order, err := f.orders.PlaceOrder(ctx, user, PlaceOrderInput{Items: []OrderLine{
		{ProductID: groundnut.ID, Quantity: 1},
		{ProductID: mustard.ID, Quantity: 2},
		{ProductID: groundnut.ID, Quantity: 1},
	}})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, 3066.66, order.Total)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "Pune", order.ShippingAddress.City, "falls back to the profile address")

	mine, err := f.orders.ListForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, order.ID, mine[0].ID)

	assert.Contains(t, f.dispatcher.types(), events.EventOrderPlaced)
}

func TestOrderService_RejectsUnavailableProducts(t *testing.T) {
	f := newFixture(t, config.AuthConfig{})
	ctx := context.Background()
	oils := f.seedCategory(t, "Oils")
	gone := f.seedProduct(t, oils.ID, "Pomace Oil", 1100)
	require.NoError(t, f.catalog.DeleteProduct(ctx, gone.ID))

	user := &domain.User{Account: domain.Account{ID: "u-1", Role: domain.RoleUser, Active: true}}

	_, err := f.orders.PlaceOrder(ctx, user, PlaceOrderInput{Items: []OrderLine{{ProductID: gone.ID, Quantity: 1}}})
	assert.ErrorIs(t, err, ErrProductUnavailable)

	_, err = f.orders.PlaceOrder(ctx, user, PlaceOrderInput{Items: []OrderLine{{ProductID: "missing", Quantity: 1}}})
	assert.ErrorIs(t, err, ErrProductUnavailable)

	all, err := f.orders.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	f := newFixture(t, config.AuthConfig{})
	ctx := context.Background()
	oils := f.seedCategory(t, "Oils")
	p := f.seedProduct(t, oils.ID, "Groundnut Oil", 1200)
	user := &domain.User{Account: domain.Account{ID: "u-1", Role: domain.RoleUser, Active: true}}
	admin := &domain.Admin{Account: domain.Account{ID: "a-1", Role: domain.RoleAdmin, Active: true}}

	order, err := f.orders.PlaceOrder(ctx, user, PlaceOrderInput{Items: []OrderLine{{ProductID: p.ID, Quantity: 1}}})
	require.NoError(t, err)

	_, err = f.orders.UpdateStatus(ctx, admin, order.ID, domain.OrderStatus("lost"))
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)

	_, err = f.orders.UpdateStatus(ctx, admin, "missing", domain.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	shipped, err := f.orders.UpdateStatus(ctx, admin, order.ID, domain.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, shipped.Status)
	assert.Contains(t, f.dispatcher.types(), events.EventOrderStatusChanged)
}
