package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/goldendrops/storefront/internal/domain"
)

const activeCategoriesKey = "storefront:categories:active"

// categoryLoadTimeout bounds a shared cache refill. The refill runs detached
// from the request that started it so that one cancelled caller does not fail
// every caller waiting on the same load.
const categoryLoadTimeout = 5 * time.Second

// CachedCategoryRepository serves the public category list from Redis and
// invalidates it on every write. Redis failures fall through to Postgres.
type CachedCategoryRepository struct {
	repo   CategoryRepository
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
	group  singleflight.Group

	// generation is bumped by every invalidation. A refill only stores its
	// list when no invalidation happened while it was reading.
	generation atomic.Uint64
}

// NewCachedCategoryRepository wraps repo with a read-through cache.
func NewCachedCategoryRepository(repo CategoryRepository, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedCategoryRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedCategoryRepository{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// ListActive collapses concurrent cache misses into one database read.
func (r *CachedCategoryRepository) ListActive(ctx context.Context) ([]domain.Category, error) {
	if cached, ok := r.readCache(ctx); ok {
		return cached, nil
	}

	v, err, _ := r.group.Do(activeCategoriesKey, func() (any, error) {
		gen := r.generation.Load()
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), categoryLoadTimeout)
		defer cancel()

		categories, err := r.repo.ListActive(loadCtx)
		if err != nil {
			return nil, err
		}
		r.writeCache(loadCtx, gen, categories)
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Category), nil
}

func (r *CachedCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	return r.repo.GetByID(ctx, id)
}

func (r *CachedCategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	if err := r.repo.Create(ctx, c); err != nil {
		return err
	}
	r.Invalidate(ctx)
	return nil
}

func (r *CachedCategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	if err := r.repo.Update(ctx, c); err != nil {
		return err
	}
	r.Invalidate(ctx)
	return nil
}

func (r *CachedCategoryRepository) Delete(ctx context.Context, id string) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}
	r.Invalidate(ctx)
	return nil
}

func (r *CachedCategoryRepository) readCache(ctx context.Context) ([]domain.Category, bool) {
	if r.cache == nil {
		return nil, false
	}
	raw, err := r.cache.Get(ctx, activeCategoriesKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("category cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var categories []domain.Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		r.logger.Warn("category cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return categories, true
}

// writeCache stores categories unless an invalidation happened since gen was
// read. The generation is checked again after the write: an invalidation that
// raced the SET is followed by a delete here.
func (r *CachedCategoryRepository) writeCache(ctx context.Context, gen uint64, categories []domain.Category) {
	if r.cache == nil || r.generation.Load() != gen {
		return
	}
	payload, err := json.Marshal(categories)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, activeCategoriesKey, payload, r.ttl).Err(); err != nil {
		r.logger.Warn("category cache write failed", zap.Error(err))
		return
	}
	if r.generation.Load() != gen {
		r.drop(ctx)
	}
}

// Invalidate drops the cached list and detaches any refill already in flight,
// so later readers load the list again. Failures are logged.
func (r *CachedCategoryRepository) Invalidate(ctx context.Context) {
	r.generation.Add(1)
	r.group.Forget(activeCategoriesKey)
	r.drop(ctx)
}

func (r *CachedCategoryRepository) drop(ctx context.Context) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Del(ctx, activeCategoriesKey).Err(); err != nil {
		r.logger.Warn("category cache invalidation failed", zap.Error(err))
	}
}
