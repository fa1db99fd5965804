package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/goldendrops/storefront/internal/auth"
	"github.com/goldendrops/storefront/internal/config"
	"github.com/goldendrops/storefront/internal/domain"
	"github.com/goldendrops/storefront/internal/events"
	"github.com/goldendrops/storefront/internal/repository"
	"github.com/goldendrops/storefront/internal/repository/repotest"
)

// recordingDispatcher captures published events.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, e events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, e)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, len(d.events))
	for i, e := range d.events {
		out[i] = e.Type
	}
	return out
}

type fixture struct {
	store      *repotest.Store
	tokens     *auth.TokenService
	dispatcher *recordingDispatcher
	auth       *AuthService
	catalog    *CatalogService
	orders     *OrderService
	admin      *AdminService
	profile    *ProfileService
}

func newFixture(t *testing.T, cfg config.AuthConfig) *fixture {
	t.Helper()
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 4
	}
	store := repotest.New()
	tokens := auth.NewTokenService("service-secret")
	d := &recordingDispatcher{}

	return &fixture{
		store:      store,
		tokens:     tokens,
		dispatcher: d,
		auth: NewAuthService(cfg, AuthDependencies{
			Credentials: repository.NewCredentialStore(store.Users(), store.Admins()),
			UserRepo:    store.Users(),
			AdminRepo:   store.Admins(),
			Tokens:      tokens,
			Dispatcher:  d,
		}),
		catalog: NewCatalogService(store.Categories(), store.Products(), nil),
		orders:  NewOrderService(store.Orders(), store.Products(), d, nil),
		admin:   NewAdminService(store.Users(), store.Products(), store.Orders(), d, nil),
		profile: NewProfileService(store.Users()),
	}
}

func (f *fixture) seedCategory(t *testing.T, name string) *domain.Category {
	t.Helper()
	c, err := f.catalog.CreateCategory(context.Background(), CategoryInput{Name: &name})
	require.NoError(t, err)
	return c
}

func (f *fixture) seedProduct(t *testing.T, categoryID, name string, price float64) *domain.Product {
	t.Helper()
	p, err := f.catalog.CreateProduct(context.Background(), ProductInput{Name: &name, Price: &price, CategoryID: &categoryID})
	require.NoError(t, err)
	return p
}

func ptr[T any](v T) *T { return &v }

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
