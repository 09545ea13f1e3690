package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"eggypro-store/internal/config"
	"eggypro-store/internal/db"
	"eggypro-store/internal/migrate"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg := config.FromEnv()
	if cfg.DBConnString == "" {
		logger.Error("DB_DSN is required for migrations")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}
	logger.Info("migrations applied")
}
