// Package repotest provides in-memory repositories for service and HTTP tests.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goldendrops/storefront/internal/catalog"
	"github.com/goldendrops/storefront/internal/domain"
	"github.com/goldendrops/storefront/internal/repository"
)

// Store holds every in-memory table. Set Err to make all calls fail.
type Store struct {
	mu         sync.Mutex
	users      map[string]domain.User
	admins     map[string]domain.Admin
	categories map[string]domain.Category
	products   map[string]domain.Product
	orders     map[string]domain.Order
	now        func() time.Time
	last       time.Time

	Err error
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:      map[string]domain.User{},
		admins:     map[string]domain.Admin{},
		categories: map[string]domain.Category{},
		products:   map[string]domain.Product{},
		orders:     map[string]domain.Order{},
		now:        time.Now,
	}
}

// Users returns the store's UserRepository view.
func (s *Store) Users() repository.UserRepository { return (*users)(s) }

// Admins returns the store's AdminRepository view.
func (s *Store) Admins() repository.AdminRepository { return (*admins)(s) }

// Categories returns the store's CategoryRepository view.
func (s *Store) Categories() repository.CategoryRepository { return (*categories)(s) }

// Products returns the store's ProductRepository view.
func (s *Store) Products() repository.ProductRepository { return (*products)(s) }

// Orders returns the store's OrderRepository view.
func (s *Store) Orders() repository.OrderRepository { return (*orders)(s) }

// tick returns a strictly increasing timestamp so newest-first ordering is
// deterministic.
func (s *Store) tick() time.Time {
	t := s.now().UTC().Truncate(time.Microsecond)
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

func (s *Store) lock() func() {
	s.mu.Lock()
	return s.mu.Unlock
}

func duplicate(what string) error {
	return fmt.Errorf("%w: %s", repository.ErrDuplicate, what)
}

func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

type users Store

func (r *users) Create(_ context.Context, u *domain.User) error {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return duplicate("users_email_key")
		}
	}
	assignID(&u.ID)
	u.CreatedAt = s.tick()
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = *u
	return nil
}

func (r *users) Update(_ context.Context, u *domain.User) error {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return s.Err
	}
	existing, ok := s.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.Name, existing.Phone, existing.Address = u.Name, u.Phone, u.Address
	existing.UpdatedAt = s.tick()
	s.users[u.ID] = existing
	u.UpdatedAt = existing.UpdatedAt
	return nil
}

func (r *users) GetByID(_ context.Context, id string) (*domain.User, error) {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *users) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *users) List(_ context.Context) ([]domain.User, error) {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *users) SetActive(_ context.Context, id string, active bool) (*domain.User, error) {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Active = active
	u.UpdatedAt = s.tick()
	s.users[id] = u
	return &u, nil
}

func (r *users) Count(_ context.Context) (int64, int64, error) {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return 0, 0, s.Err
	}
	var active int64
	for _, u := range s.users {
		if u.Active {
			active++
		}
	}
	return int64(len(s.users)), active, nil
}

type admins Store

func (r *admins) Create(_ context.Context, a *domain.Admin) error {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.admins {
		if existing.Email == a.Email {
			return duplicate("admins_email_key")
		}
	}
	assignID(&a.ID)
	if a.Permissions == nil {
		a.Permissions = []string{}
	}
	a.CreatedAt = s.tick()
	a.UpdatedAt = a.CreatedAt
	s.admins[a.ID] = *a
	return nil
}

func (r *admins) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return nil, s.Err
	}
	a, ok := s.admins[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *admins) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, a := range s.admins {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *admins) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return s.Err
	}
	a, ok := s.admins[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.LastLogin = &at
	s.admins[id] = a
	return nil
}

type categories Store

func (r *categories) ListActive(_ context.Context) ([]domain.Category, error) {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []domain.Category{}
	for _, c := range s.categories {
		if c.Active {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *categories) GetByID(_ context.Context, id string) (*domain.Category, error) {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return nil, s.Err
	}
	c, ok := s.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *categories) Create(_ context.Context, c *domain.Category) error {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.categories {
		if existing.Name == c.Name {
			return duplicate("categories_name_key")
		}
	}
	assignID(&c.ID)
	c.CreatedAt = s.tick()
	c.UpdatedAt = c.CreatedAt
	s.categories[c.ID] = *c
	return nil
}

func (r *categories) Update(_ context.Context, c *domain.Category) error {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return s.Err
	}
	existing, ok := s.categories[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, other := range s.categories {
		if id != c.ID && other.Name == c.Name {
			return duplicate("categories_name_key")
		}
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = s.tick()
	s.categories[c.ID] = *c
	return nil
}

func (r *categories) Delete(_ context.Context, id string) error {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

type products Store

func (r *products) withCategoryName(p domain.Product) domain.Product {
	if c, ok := r.categories[p.CategoryID]; ok {
		p.CategoryName = c.Name
	}
	return p
}

func (r *products) Search(_ context.Context, q catalog.ProductQuery) ([]domain.Product, error) {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return nil, s.Err
	}
	all := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		all = append(all, r.withCategoryName(p))
	}
	return q.Apply(all), nil
}

func (r *products) GetByID(_ context.Context, id string) (*domain.Product, error) {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = r.withCategoryName(p)
	return &p, nil
}

func (r *products) Create(_ context.Context, p *domain.Product) error {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return s.Err
	}
	assignID(&p.ID)
	if p.Images == nil {
		p.Images = []string{}
	}
	p.CreatedAt = s.tick()
	p.UpdatedAt = p.CreatedAt
	s.products[p.ID] = *p
	return nil
}

func (r *products) Update(_ context.Context, p *domain.Product) error {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return s.Err
	}
	existing, ok := s.products[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = s.tick()
	s.products[p.ID] = *p
	return nil
}

func (r *products) Deactivate(_ context.Context, id string) error {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return s.Err
	}
	p, ok := s.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Active = false
	p.UpdatedAt = s.tick()
	s.products[id] = p
	return nil
}

func (r *products) CountByCategory(_ context.Context, categoryID string) (int64, error) {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return 0, s.Err
	}
	var n int64
	for _, p := range s.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *products) CountActive(_ context.Context) (int64, error) {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return 0, s.Err
	}
	var n int64
	for _, p := range s.products {
		if p.Active {
			n++
		}
	}
	return n, nil
}

type orders Store

func (r *orders) Create(_ context.Context, o *domain.Order) error {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return s.Err
	}
	assignID(&o.ID)
	o.CreatedAt = s.tick()
	o.UpdatedAt = o.CreatedAt
	s.orders[o.ID] = *o
	return nil
}

func (r *orders) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	return r.filter(func(o domain.Order) bool { return o.UserID == userID })
}

func (r *orders) List(_ context.Context) ([]domain.Order, error) {
	return r.filter(func(domain.Order) bool { return true })
}

func (r *orders) filter(keep func(domain.Order) bool) ([]domain.Order, error) {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []domain.Order{}
	for _, o := range s.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *orders) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return nil, s.Err
	}
	o, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = s.tick()
	s.orders[id] = o
	return &o, nil
}

func (r *orders) Stats(_ context.Context) (repository.OrderStats, error) {
	s := (*Store)(r)
	defer s.lock()()
	if s.Err != nil {
		return repository.OrderStats{}, s.Err
	}
	var stats repository.OrderStats
	for _, o := range s.orders {
		stats.Total++
		if o.Status == domain.OrderStatusPending {
			stats.Pending++
		}
		if o.Status != domain.OrderStatusCancelled {
			stats.Revenue += o.Total
		}
	}
	return stats, nil
}
