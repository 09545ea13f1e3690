package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"eggypro-store/internal/cart"
	"eggypro-store/internal/config"
	"eggypro-store/internal/db"
	"eggypro-store/internal/httpserver"
	productrepo "eggypro-store/internal/repository/product"
	"eggypro-store/internal/service/catalog"
	"eggypro-store/internal/storage"
)

func main() {
	cfg := config.FromEnv()
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		fallback, _ := zap.NewProduction()
		fallback.Fatal("init logger", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	// The catalog database is optional: without it the storefront serves
	// the fallback product set.
	pool := connectOptionalDB(ctx, cfg, logger)
	if pool != nil {
		defer pool.Close()
	}

	var repo productrepo.Repository
	if pool != nil {
		repo = productrepo.NewPostgres(pool, logger)
	}
	catalogSvc := catalog.New(repo, logger)

	store := buildCartStore(cfg, logger)
	carts := cart.NewManager(cart.ManagerConfig{
		Store:      store,
		Logger:     logger,
		DeleteWait: cfg.DeleteCompletionDelay,
		UndoWindow: cfg.UndoWindow,
		SessionTTL: cfg.SessionTTL,
	})
	defer carts.Close()

	srv, err := httpserver.New(cfg.HTTPAddr, logger, pool, httpserver.Deps{
		CatalogSvc:     catalogSvc,
		Carts:          carts,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}

func connectOptionalDB(ctx context.Context, cfg config.Config, logger *zap.Logger) *pgxpool.Pool {
	if cfg.DBConnString == "" {
		logger.Info("no DB_DSN configured, catalog will serve fallback data")
		return nil
	}
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Warn("connect to db failed, catalog will serve fallback data", zap.Error(err))
		return nil
	}
	return pool
}

func buildCartStore(cfg config.Config, logger *zap.Logger) storage.Store {
	if cfg.CartStore == "redis" && cfg.RedisAddr != "" {
		logger.Info("using redis cart store", zap.String("addr", cfg.RedisAddr))
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return storage.NewRedisStore(client)
	}
	logger.Info("using in-memory cart store")
	return storage.NewMemoryStore()
}

func initLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
