package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"eggypro-store/internal/config"
	"eggypro-store/internal/db"
	"eggypro-store/internal/importer"
	productrepo "eggypro-store/internal/repository/product"
)

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	if len(os.Args) < 2 {
		logger.Error("usage: importer <products.csv>")
		os.Exit(2)
	}

	cfg := config.FromEnv()
	if cfg.DBConnString == "" {
		logger.Error("DB_DSN is required for importing")
		os.Exit(1)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		logger.Fatal("open csv", zap.Error(err))
	}
	defer f.Close()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer pool.Close()

	repo := productrepo.NewPostgres(pool, logger)
	imp := importer.NewCSVImporter(f, repo)

	n, err := imp.Run(ctx)
	if err != nil {
		logger.Fatal("import failed", zap.Int("imported", n), zap.Error(err))
	}
	logger.Info("import complete", zap.Int("imported", n))
}
