package service

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/goldendrops/storefront/internal/domain"
	"github.com/goldendrops/storefront/internal/events"
	"github.com/goldendrops/storefront/internal/repository"
)

// OrderLine is one requested product and quantity.
type OrderLine struct {
	ProductID string
	Quantity  int
}

// PlaceOrderInput is a validated checkout request. A nil or empty shipping
// address falls back to the user's profile address.
type PlaceOrderInput struct {
	Items           []OrderLine
	ShippingAddress *domain.Address
}

// OrderService places and manages orders.
type OrderService struct {
	orders     repository.OrderRepository
	products   repository.ProductRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewOrderService builds the service.
func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, dispatcher events.Dispatcher, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{orders: orders, products: products, dispatcher: dispatcher, logger: logger}
}

// PlaceOrder prices every line at the product's current price. Repeated
// products are merged into one line.
func (s *OrderService) PlaceOrder(ctx context.Context, user *domain.User, in PlaceOrderInput) (*domain.Order, error) {
	items := make([]domain.OrderItem, 0, len(in.Items))
	index := map[string]int{}
	var total float64

	for _, line := range in.Items {
		product, err := s.products.GetByID(ctx, line.ProductID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductUnavailable
		}
		if err != nil {
			return nil, err
		}
		if !product.Active || !product.InStock {
			return nil, ErrProductUnavailable
		}

		total += product.Price * float64(line.Quantity)
		if i, ok := index[product.ID]; ok {
			items[i].Quantity += line.Quantity
			continue
		}
		index[product.ID] = len(items)
		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
		})
	}

	address := user.Address
	if in.ShippingAddress != nil && !in.ShippingAddress.IsZero() {
		address = *in.ShippingAddress
	}

	order := &domain.Order{
		UserID:          user.ID,
		Items:           items,
		Total:           math.Round(total*100) / 100,
		Status:          domain.OrderStatusPending,
		ShippingAddress: address,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventOrderPlaced, order.ID,
		events.Actor{ID: user.ID, Role: user.Role},
		events.OrderPlacedPayload{Items: len(items), Total: order.Total}))
	return order, nil
}

// ListForUser returns the user's orders, newest first.
func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// ListAll returns every order, newest first.
func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

// UpdateStatus sets an order to any known status.
func (s *OrderService) UpdateStatus(ctx context.Context, actor *domain.Admin, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidOrderStatus
	}
	order, err := s.orders.UpdateStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventOrderStatusChanged, order.ID,
		events.Actor{ID: actor.ID, Role: actor.Role},
		events.OrderStatusChangedPayload{UserID: order.UserID, Status: order.Status}))
	return order, nil
}
