package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/math-master/backend/internal/api"
	"github.com/math-master/backend/internal/history"
	"github.com/math-master/backend/internal/identity"
	"github.com/math-master/backend/internal/infrastructure/config"
	"github.com/math-master/backend/internal/notify"
	"github.com/math-master/backend/internal/provider"
	"github.com/math-master/backend/internal/service"

	_ "github.com/math-master/backend/docs" // generated swagger docs
)

// @title           Math Master API
// @version         1.0
// @description     Mock math tests for young students — timed sessions, automatic scoring, and progress history.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	var store history.Store
	var err error
	switch cfg.HistoryBackend {
	case "redis":
		store, err = history.NewRedis(cfg.RedisAddress, cfg.RedisPassword)
	default:
		store, err = history.NewSQLite(cfg.DBPath)
	}
	if err != nil {
		logger.Error("failed to open history store", "backend", cfg.HistoryBackend, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	bank, err := provider.NewSampleBank(time.Now().UnixNano())
	if err != nil {
		logger.Error("failed to load sample question bank", "error", err)
		os.Exit(1)
	}

	ai := provider.NewAIProvider(cfg.AIURL, cfg.AITimeout)
	notifier := notify.NewSlogNotifier(logger)
	audio := notify.NewSlogAudio(logger)
	chain := provider.NewChain(ai, bank, notifier, logger)

	flow := service.NewTestFlow(service.Options{
		Provider: chain,
		Bank:     bank,
		Store:    store,
		Students: identity.NewStatic(cfg.StudentUsername, cfg.StudentLevel),
		Notifier: notifier,
		Audio:    audio,
		Logger:   logger,
	})
	defer flow.Close()

	handler := api.NewHandler(flow, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
