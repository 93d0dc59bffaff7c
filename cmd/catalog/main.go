package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"CasaMoreno/internal/catalog/handlers"
	"CasaMoreno/internal/catalog/repo"
	"CasaMoreno/internal/catalog/service"
	"CasaMoreno/internal/config"
	"CasaMoreno/internal/middleware"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	sugar := logger.Sugar()
	middleware.SetLogger(sugar)
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	productRepo := repo.NewProductRepository(gormDB)
	catalogService := service.NewCatalogService(productRepo, cfg.AuthSecret)

	if cfg.SeedCatalog {
		n, err := catalogService.Seed(ctx)
		if err != nil {
			sugar.Fatalw("failed to seed catalog", "error", err)
		}
		sugar.Infow("Catalog seeded", "products", n)
	}

	h := handlers.NewHandler(catalogService, sugar, cfg.AuthSecret)

	sugar.Infow("Config",
		"CatalogAddr", cfg.CatalogAddr,
		"Postgres", repo.IsPostgresDSN(cfg.DatabaseDSN),
		"SeedCatalog", cfg.SeedCatalog,
	)

	srv := &http.Server{
		Addr:              cfg.CatalogAddr,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Shutdown failed", "error", err)
		}
	}()

	sugar.Infow("Starting catalog", "addr", cfg.CatalogAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw("Server failed", "error", err)
	}
}
