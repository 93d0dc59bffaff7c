package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"CasaMoreno/internal/api"
	"CasaMoreno/internal/config"
	"CasaMoreno/internal/handlers"
	"CasaMoreno/internal/loader"
	"CasaMoreno/internal/metrics"
	"CasaMoreno/internal/middleware"
	"CasaMoreno/internal/storage"
	"CasaMoreno/internal/view"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// один клиент на процесс; токен берётся из cookie текущего посетителя
	client, err := api.New(cfg.APIURL, api.WithStorage(storage.FromContext()))
	if err != nil {
		sugar.Fatalw("Failed to create API client", "error", err)
	}

	m := metrics.NewManager()

	var loaderOpts []loader.Option
	loaderOpts = append(loaderOpts, loader.WithRecorder(m))
	if cfg.PartialResults {
		loaderOpts = append(loaderOpts, loader.WithPartialResults())
	}
	pages := loader.New(client, sugar, loaderOpts...)

	themes, err := view.DefaultThemes(cfg.Theme, cfg.ThemeVariant)
	if err != nil {
		sugar.Fatalw("Failed to load themes", "error", err)
	}
	renderer, err := view.New(themes, cfg.Theme, cfg.ThemeVariant)
	if err != nil {
		sugar.Fatalw("Failed to create renderer", "error", err)
	}

	h := handlers.NewHandler(pages, renderer, m, sugar)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"APIURL", cfg.APIURL,
		"Theme", renderer.Theme().Name,
		"ThemeVariant", renderer.Theme().Variant,
		"PartialResults", cfg.PartialResults,
	)

	srv := &http.Server{
		Addr:              cfg.BaseURL,
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

	sugar.Infow("Starting storefront", "addr", cfg.BaseURL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw("Server failed", "error", err)
	}
}
