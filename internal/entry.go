// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/torii/internal/api"
	"github.com/starford/torii/internal/mcpserver"
	"github.com/starford/torii/internal/metrics"
	"github.com/starford/torii/internal/querylog"
	"github.com/starford/torii/internal/records"
	"github.com/starford/torii/internal/sse"
	"github.com/starford/torii/internal/templeservice"
	"github.com/starford/torii/internal/web"
)

// setupLogger installs the structured JSON logger. MCP mode logs to stderr
// because stdout carries the protocol.
func setupLogger(cfg *Config, mcpMode bool) *slog.Logger {
	out := os.Stdout
	if mcpMode {
		out = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := newApplication(opts...)
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	logger := setupLogger(cfg, false)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("records_path", cfg.Records.Path),
		slog.Bool("records_watch", cfg.Records.Watch),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Load records; a failed load leaves an empty store.
	holder := records.NewHolder(records.LoadFile(cfg.Records.Path, logger))
	metrics.DatasetRecords.Set(float64(holder.Load().Len()))

	// Query log is optional: the map keeps working without it.
	var qlog templeservice.QueryLog
	db, err := querylog.Open(cfg.SQLite.Path)
	if err != nil {
		logger.Warn("query log disabled", slog.String("error", err.Error()))
	} else {
		defer db.Close()
		qlog = db
	}

	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	svc := templeservice.NewService(holder, qlog)
	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if svc.Len() == 0 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"no records"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())

	r.Mount("/api", apiRouter)
	web.NewHandler(svc, web.MapSettings{
		CenterLat:   cfg.Map.CenterLat,
		CenterLng:   cfg.Map.CenterLng,
		Zoom:        cfg.Map.Zoom,
		TileURL:     cfg.Map.TileURL,
		Attribution: cfg.Map.Attribution,
	}).Routes(r)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	if cfg.Records.Watch {
		g.Go(func() error {
			err := records.Watch(gCtx, holder, cfg.Records.Path, logger, func(s *records.Store) {
				metrics.DatasetReloadsTotal.Inc()
				metrics.DatasetRecords.Set(float64(s.Len()))
				broker.PublishReload(s.Len(), s.Checksum())
			})
			if err != nil {
				logger.Error("watcher: failed to start", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP serves the MCP tools on stdin/stdout until the client disconnects.
func RunMCP(_ context.Context, opts ...Option) error {
	app := newApplication(opts...)
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	logger := setupLogger(cfg, true)

	holder := records.NewHolder(records.LoadFile(cfg.Records.Path, logger))

	var qlog templeservice.QueryLog
	if db, err := querylog.Open(cfg.SQLite.Path); err != nil {
		logger.Warn("query log disabled", slog.String("error", err.Error()))
	} else {
		defer db.Close()
		qlog = db
	}

	srv := mcpserver.New(templeservice.NewService(holder, qlog), app.version)
	logger.Info("MCP server starting on stdio", slog.Int("records", holder.Load().Len()))
	return srv.ServeStdio()
}
