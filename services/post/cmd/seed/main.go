package main

import (
	"context"
	"fmt"
	"time"

	"newsdesk/pkg/config"
	"newsdesk/pkg/database"
	"newsdesk/pkg/logger"
	"newsdesk/services/post/internal/repo/persistent"
	"newsdesk/services/post/internal/seed"
	"newsdesk/services/post/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	defer log.Sync()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	postRepo := persistent.NewPostRepository(db)
	authorRepo := persistent.NewAuthorRepository(db)
	views := usecase.NewViewCounter(postRepo, cfg.ViewIncrementTTL, log)
	postUseCase := usecase.NewPostUseCase(postRepo, authorRepo, nil, views, nil, nil, usecase.SettingsFromConfig(cfg), log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := seed.Run(ctx, authorRepo, postRepo, postUseCase, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully! Demo password: %s", seed.DemoPassword)
}
