package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goldendrops/storefront/internal/domain"
	"github.com/goldendrops/storefront/internal/events"
	"github.com/goldendrops/storefront/internal/repository"
)

// AdminService backs the admin back office.
type AdminService struct {
	users      repository.UserRepository
	products   repository.ProductRepository
	orders     repository.OrderRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAdminService builds the service.
func NewAdminService(users repository.UserRepository, products repository.ProductRepository, orders repository.OrderRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{users: users, products: products, orders: orders, dispatcher: dispatcher, logger: logger}
}

// Dashboard gathers the store counters concurrently.
func (s *AdminService) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	var stats domain.DashboardStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, active, err := s.users.Count(gctx)
		stats.TotalUsers, stats.ActiveUsers = total, active
		return err
	})
	g.Go(func() error {
		n, err := s.products.CountActive(gctx)
		stats.TotalProducts = n
		return err
	})
	g.Go(func() error {
		o, err := s.orders.Stats(gctx)
		stats.TotalOrders, stats.PendingOrders, stats.Revenue = o.Total, o.Pending, o.Revenue
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.DashboardStats{}, err
	}
	return stats, nil
}

// ListUsers returns all users, newest first.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// SetUserStatus activates or deactivates a user. A deactivated user's
// outstanding tokens are rejected by the guard on their next request.
func (s *AdminService) SetUserStatus(ctx context.Context, actor *domain.Admin, userID string, active bool) (*domain.User, error) {
	user, err := s.users.SetActive(ctx, userID, active)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventUserStatusChanged, user.ID,
		events.Actor{ID: actor.ID, Role: actor.Role},
		events.UserStatusChangedPayload{Email: user.Email, Active: user.Active}))
	return user, nil
}
