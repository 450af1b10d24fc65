package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"storytasks/internal/config"
	"storytasks/internal/handlers"
	"storytasks/internal/logging"
	"storytasks/internal/pagination"
	"storytasks/internal/service"
	"storytasks/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("storytasks: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, logCloser, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	// Ensure data directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	s, err := store.NewSQLiteStore(cfg.Database.Driver, cfg.Database.Path, logger)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer s.Close()

	stories := s.Stories()
	opts := service.Options{
		PageSize: cfg.Paging.PageSize(),
		Tokens:   pagination.Codec{TTL: cfg.Paging.TokenTTL},
	}
	h := handlers.New(
		service.NewStoryService(stories, opts),
		service.NewTaskService(stories, s.Tasks()),
		logger,
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	h.Routes(r)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.Addr, "driver", cfg.Database.Driver, "db", cfg.Database.Path)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
