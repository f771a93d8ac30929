// Package app assembles the server: configuration, logging, storage,
// services, HTTP transport, and graceful shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mverbeek/phonebook-backend/internal/adapter/sqlite"
	contactrepo "github.com/mverbeek/phonebook-backend/internal/adapter/sqlite/contact"
	directoryrepo "github.com/mverbeek/phonebook-backend/internal/adapter/sqlite/directory"
	"github.com/mverbeek/phonebook-backend/internal/config"
	directorysvc "github.com/mverbeek/phonebook-backend/internal/service/directory"
	"github.com/mverbeek/phonebook-backend/internal/service/phonebook"
	"github.com/mverbeek/phonebook-backend/internal/transport/middleware"
	"github.com/mverbeek/phonebook-backend/internal/transport/rest"
)

// Run is the application entry point: load config, open and migrate the
// database, seed on first run, and serve HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting phonebook backend",
		slog.String("version", BuildVersion()),
		slog.String("database", cfg.Database.Path),
	)

	db, err := sqlite.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := sqlite.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	tx := sqlite.NewTxManager(db)
	pbSvc := phonebook.NewService(logger, contactrepo.New(db), tx)
	dirSvc := directorysvc.NewService(logger, directoryrepo.New(db), tx)

	if _, err := pbSvc.SeedFromFile(ctx, cfg.Seed.XMLPath); err != nil {
		return err
	}

	mux := rest.NewRouter(rest.Handlers{
		Contacts:     rest.NewContactHandler(logger, pbSvc),
		ImportExport: rest.NewImportExportHandler(logger, pbSvc, pbSvc),
		Feeds:        rest.NewFeedHandler(logger, pbSvc, db),
		Directory:    rest.NewDirectoryHandler(logger, dirSvc),
		Health:       rest.NewHealthHandler(db),
	})

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	)(mux)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
