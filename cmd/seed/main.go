package main

import (
	"context"

	"github.com/websopen/web-valencio/internal/config"
	"github.com/websopen/web-valencio/internal/database"
	"github.com/websopen/web-valencio/internal/logger"
	"github.com/websopen/web-valencio/internal/model"
	"github.com/websopen/web-valencio/internal/repository"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Seed Catalog ──────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(pool)

	catalog := model.DefaultCatalog()
	for i, p := range catalog {
		if err := productRepo.Upsert(ctx, p, i); err != nil {
			log.Fatal().Err(err).Str("product", p.ID).Msg("Failed to seed product")
		}
		log.Info().Str("product", p.ID).Str("name", p.Name).Msg("Seeded")
	}

	log.Info().Int("count", len(catalog)).Msg("Catalog seeded")
}
