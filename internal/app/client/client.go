package client

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"retailsync/internal/app/client/config"
	"retailsync/internal/domain/partition"
	"retailsync/internal/domain/sync"
	"retailsync/internal/domain/usage"
	"retailsync/internal/infrastructure/remote"
	"retailsync/internal/infrastructure/storage"
)

// App - клиент на устройстве: локальное зеркало и синхронизация с общим документом
type App struct {
	config *config.Config
	log    *slog.Logger
	local  storage.Store
	engine *sync.Engine
	usage  *usage.Service
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	local, err := storage.Open(cfg.DataPath, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации хранилища: %w", err)
	}

	var client sync.RemoteClient = remote.Disabled{}
	if cfg.RemoteConfigured() {
		client = remote.NewClient(remote.Config{
			BaseURL:    cfg.Remote.URL,
			DocumentID: cfg.Remote.DocumentID,
			APIKey:     cfg.Remote.APIKey,
			Timeout:    cfg.Remote.Timeout,
		}, log)
	} else {
		log.Debug("remote is not configured, working offline")
	}

	return newApp(cfg, log, local, client), nil
}

func newApp(cfg *config.Config, log *slog.Logger, local storage.Store, client sync.RemoteClient) *App {
	return &App{
		config: cfg,
		log:    log,
		local:  local,
		engine: sync.NewEngine(local, client, log, sync.Config{
			MaxRetries: cfg.Sync.MaxRetries,
			RetryDelay: cfg.Sync.RetryDelay,
		}),
		usage: usage.NewService(client, usage.NewReporter(cfg.StorageLimit), log),
	}
}

// Username возвращает пользователя: явно переданного или из конфигурации
func (a *App) Username(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if a.config.Username != "" {
		return a.config.Username, nil
	}
	return "", fmt.Errorf("%w: укажите пользователя через --user или RETAILSYNC_USER", sync.ErrValidation)
}

func (a *App) Load(ctx context.Context, username string) (*sync.LoadResult, error) {
	return a.engine.Load(ctx, username)
}

func (a *App) Save(ctx context.Context, username string, data partition.UserPartition) (*sync.SaveResult, error) {
	return a.engine.Save(ctx, username, data)
}

func (a *App) Status(ctx context.Context) (*sync.Status, error) {
	return a.engine.Status(ctx)
}

func (a *App) Usage(ctx context.Context) (*usage.Report, error) {
	return a.usage.Report(ctx)
}

func (a *App) Close() error {
	return a.local.Close()
}

type appKey struct{}

// WithApp кладет приложение в контекст команды
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

// FromContext достает приложение из контекста команды
func FromContext(ctx context.Context) (*App, error) {
	app, ok := ctx.Value(appKey{}).(*App)
	if !ok || app == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}
