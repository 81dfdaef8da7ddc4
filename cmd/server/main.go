package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"

	"retailsync/internal/app/server/api"
	"retailsync/internal/app/server/config"
	"retailsync/internal/domain/document"
	"retailsync/internal/domain/sync"
	"retailsync/internal/domain/usage"
	"retailsync/internal/infrastructure/remote"
	"retailsync/internal/infrastructure/storage"
	"retailsync/internal/infrastructure/storage/postgres"
	"retailsync/internal/utils/logger"
)

const (
	defaultDocumentID = "default"
	shutdownTimeout   = 10 * time.Second
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	local, err := storage.Open(cfg.Local.DataPath, log)
	if err != nil {
		return err
	}
	defer local.Close()

	services := api.Services{}

	var documents document.Repository
	if cfg.DB.DatabaseURI != "" {
		pg, err := postgres.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer pg.Close()

		documents = postgres.NewDocumentRepository(pg.Pool(), log)
		services.Document = document.NewService(documents, log)
	}

	client := selectRemote(cfg, documents, log)

	services.Sync = sync.NewEngine(local, client, log, sync.Config{
		MaxRetries: cfg.Sync.MaxRetries,
		RetryDelay: cfg.Sync.RetryDelay,
	})
	services.Usage = usage.NewService(client, usage.NewReporter(cfg.Storage.LimitBytes), log)

	router := api.New(services, api.Options{
		DocumentAPIKey:    cfg.Server.DocumentAPIKey,
		AdminPasswordHash: cfg.Admin.PasswordHash,
	}, log)

	srv := &http.Server{
		Addr:              cfg.Server.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("address", cfg.Server.RunAddress), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// selectRemote: внешний хостинг документа, иначе документ в своей базе, иначе только локальное зеркало
func selectRemote(cfg *config.Config, documents document.Repository, log *slog.Logger) sync.RemoteClient {
	switch {
	case cfg.Remote.URL != "":
		log.Info("using hosted remote document", slog.String("url", cfg.Remote.URL))
		return remote.NewClient(remote.Config{
			BaseURL:    cfg.Remote.URL,
			DocumentID: cfg.Remote.DocumentID,
			APIKey:     cfg.Remote.APIKey,
			Timeout:    cfg.Remote.Timeout,
		}, log)
	case documents != nil:
		id := cfg.Remote.DocumentID
		if id == "" {
			id = defaultDocumentID
		}
		log.Info("using postgres remote document", slog.String("document_id", id))
		return postgres.NewDocumentRemote(documents, id)
	default:
		log.Warn("no remote configured, data is kept in the local snapshot only")
		return remote.Disabled{}
	}
}
