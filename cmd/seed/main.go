// Command seed replaces the catalog with the sample categories and products.
// Every product is filed under the first category.
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/goldendrops/storefront/internal/config"
	"github.com/goldendrops/storefront/internal/domain"
	"github.com/goldendrops/storefront/internal/observability"
	"github.com/goldendrops/storefront/internal/persistence"
	"github.com/goldendrops/storefront/internal/repository"
)

//go:embed catalog.json
var catalogJSON []byte

type seedData struct {
	Categories []domain.Category `json:"categories"`
	Products   []domain.Product  `json:"products"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	var data seedData
	if err := json.Unmarshal(catalogJSON, &data); err != nil {
		logger.Fatal("decode seed data", zap.Error(err))
	}

	ctx := context.Background()
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	pool := pg.PoolHandle()
	if pool == nil {
		logger.Fatal("POSTGRES_DSN is required")
	}
	if err := persistence.RunMigrations(ctx, pool, cfg.Postgres.MigrationsDir, logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		return seed(ctx, tx, data)
	})
	if err != nil {
		logger.Fatal("seed catalog", zap.Error(err))
	}
	// The truncate bypasses the cache, so drop whatever list it holds.
	repository.NewCachedCategoryRepository(nil, redis.Client, 0, logger).Invalidate(ctx)

	logger.Info("catalog seeded",
		zap.Int("categories", len(data.Categories)),
		zap.Int("products", len(data.Products)))
}

func seed(ctx context.Context, tx pgx.Tx, data seedData) error {
	if len(data.Categories) == 0 {
		return errors.New("seed data has no categories")
	}
	if _, err := tx.Exec(ctx, `TRUNCATE products, categories`); err != nil {
		return fmt.Errorf("clear catalog: %w", err)
	}

	categories := repository.NewCategoryRepository(tx)
	for i := range data.Categories {
		c := &data.Categories[i]
		c.Active = true
		if err := categories.Create(ctx, c); err != nil {
			return fmt.Errorf("insert category %q: %w", c.Name, err)
		}
	}

	products := repository.NewProductRepository(tx)
	for i := range data.Products {
		p := &data.Products[i]
		p.CategoryID = data.Categories[0].ID
		p.Active = true
		if err := products.Create(ctx, p); err != nil {
			return fmt.Errorf("insert product %q: %w", p.Name, err)
		}
	}
	return nil
}
