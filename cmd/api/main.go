package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/denisok6893-rgb/eco-fashion-matching/internal/catalog"
	"github.com/denisok6893-rgb/eco-fashion-matching/internal/config"
	"github.com/denisok6893-rgb/eco-fashion-matching/internal/domain"
	httpapi "github.com/denisok6893-rgb/eco-fashion-matching/internal/http"
	"github.com/denisok6893-rgb/eco-fashion-matching/internal/matching"
	"github.com/denisok6893-rgb/eco-fashion-matching/internal/metrics"
	"github.com/denisok6893-rgb/eco-fashion-matching/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	products, err := loadCatalog(cfg.Catalog)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg.Storage, products)
	if err != nil {
		logger.Fatal("failed to open catalog store", zap.Error(err))
	}
	defer closeStore()

	m := metrics.New()
	m.SetCatalogSize(len(products))

	engine := matching.NewEngine(matching.DefaultWeights())
	api := httpapi.NewServer(engine, store, httpapi.Limits{
		RecommendDefault: cfg.Recommend.DefaultLimit,
		SimilarDefault:   cfg.Similar.DefaultLimit,
		CompareMaxItems:  cfg.Compare.MaxItems,
	}, m, logger)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      api.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("API listening",
		zap.String("addr", cfg.Server.Address),
		zap.String("storage", cfg.Storage.Driver),
		zap.Int("products", len(products)),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("API stopped")
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func loadCatalog(cfg config.CatalogConfig) ([]domain.Product, error) {
	if cfg.Path == "" {
		return catalog.New().Products()
	}
	return storage.LoadProductsFromFile(cfg.Path)
}

// openStore returns the configured store and a func releasing it. The sqlite
// store is seeded from products; rows already present are kept.
func openStore(ctx context.Context, cfg config.StorageConfig, products []domain.Product) (httpapi.ProductStore, func(), error) {
	if cfg.Driver != config.DriverSQLite {
		return storage.NewMemoryStore(products), func() {}, nil
	}

	s, err := storage.OpenSQLite(cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	if err := s.EnsureSchema(ctx); err != nil {
		_ = s.Close()
		return nil, nil, err
	}
	if err := s.UpsertMany(ctx, products); err != nil {
		_ = s.Close()
		return nil, nil, fmt.Errorf("seed sqlite catalog: %w", err)
	}
	return s, func() { _ = s.Close() }, nil
}
