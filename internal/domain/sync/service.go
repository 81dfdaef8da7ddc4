package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/exp/slog"

	"retailsync/internal/domain/partition"
	"retailsync/internal/infrastructure/storage"
)

// Servicer интерфейс движка синхронизации
type Servicer interface {
	// Load возвращает раздел пользователя: сначала из удаленного документа, затем из локального зеркала
	Load(ctx context.Context, username string) (*LoadResult, error)

	// Save сохраняет раздел локально, затем пытается записать его в удаленный документ
	Save(ctx context.Context, username string, data partition.UserPartition) (*SaveResult, error)

	// Status возвращает состояние локального зеркала и удаленного документа
	Status(ctx context.Context) (*Status, error)
}

// Engine реализация движка синхронизации
type Engine struct {
	local  LocalStore
	remote RemoteClient
	log    *slog.Logger
	config Config
	now    func() time.Time
}

// NewEngine создает движок синхронизации
func NewEngine(local LocalStore, remote RemoteClient, log *slog.Logger, config Config) *Engine {
	if config.RetryDelay <= 0 {
		config.RetryDelay = DefaultConfig().RetryDelay
	}

	return &Engine{
		local:  local,
		remote: remote,
		log:    log.With(slog.String("component", "sync_engine")),
		config: config,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Load возвращает раздел пользователя
func (e *Engine) Load(ctx context.Context, username string) (*LoadResult, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}

	log := e.log.With(slog.String("username", username))

	doc, err := e.remote.FetchLatest(ctx)
	if err != nil {
		log.Warn("remote fetch failed, using local snapshot", slog.String("error", err.Error()))
		return e.loadLocal(ctx, username)
	}

	if err := e.mirror(ctx, doc); err != nil {
		log.Warn("failed to refresh local snapshot", slog.String("error", err.Error()))
	}

	result := &LoadResult{
		Partition: partition.Empty(),
		Source:    SourceRemote,
		Timestamp: e.now(),
	}

	// Документ старого формата мигрирует только при сохранении
	if doc.Kind == partition.KindLegacy {
		log.Debug("remote document is legacy, returning empty partition")
		return result, nil
	}

	p, ok, err := doc.Partition(username)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", username, err)
	}
	if ok {
		result.Partition = p
	}

	return result, nil
}

// Save сохраняет раздел пользователя
func (e *Engine) Save(ctx context.Context, username string, data partition.UserPartition) (*SaveResult, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}

	log := e.log.With(slog.String("username", username))

	data.Normalize()
	data.LastUpdate = e.now()

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal partition: %w", ErrLocalPersistence, err)
	}

	if err := e.local.Save(ctx, collectionPartitions, storage.Record{ID: username, Data: raw}); err != nil {
		log.Error("local save failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", ErrLocalPersistence, err)
	}

	result := &SaveResult{LastUpdate: data.LastUpdate}

	if err := e.push(ctx, username, data); err != nil {
		log.Warn("remote save failed, data saved locally only", slog.String("error", err.Error()))
		result.Warning = "saved locally, remote sync pending: " + err.Error()
		return result, nil
	}

	log.Debug("partition synced")
	result.Synced = true

	return result, nil
}

// Status возвращает состояние локального зеркала и удаленного документа
func (e *Engine) Status(ctx context.Context) (*Status, error) {
	status := &Status{CheckedAt: e.now(), LocalUsers: []string{}}

	records, err := e.local.Load(ctx, collectionPartitions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLocalPersistence, err)
	}
	for _, rec := range records {
		status.LocalUsers = append(status.LocalUsers, rec.ID)
	}

	legacy, err := e.local.Load(ctx, collectionLegacy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLocalPersistence, err)
	}
	status.LocalLegacy = len(legacy) > 0

	doc, err := e.remote.FetchLatest(ctx)
	if err != nil {
		status.RemoteError = err.Error()
		return status, nil
	}

	status.RemoteReachable = true
	status.RemoteKind = doc.Kind.String()
	if doc.Version != partition.VersionAbsent {
		status.RemoteVersion = doc.Version
	}
	status.RemoteUsers = doc.Usernames()

	return status, nil
}

// push выполняет чтение-изменение-запись удаленного документа.
// Конфликт версий перезапускает цикл целиком, число попыток ограничено.
func (e *Engine) push(ctx context.Context, username string, data partition.UserPartition) error {
	backoff := retry.WithMaxRetries(e.config.MaxRetries, retry.NewConstant(e.config.RetryDelay))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		doc, err := e.remote.FetchLatest(ctx)
		if err != nil {
			// Без базы пишем поверх пустого документа: разделы других пользователей
			// могут быть потеряны, но локальное сохранение не блокируется
			e.log.Warn("remote fetch before save failed, using empty base",
				slog.String("username", username),
				slog.String("error", err.Error()),
			)
			doc = partition.NewDocument()
		}

		doc, err = partition.Migrate(doc, username)
		if err != nil {
			return err
		}
		if err := doc.SetPartition(username, data); err != nil {
			return err
		}

		err = e.remote.Replace(ctx, doc)
		if errors.Is(err, ErrVersionConflict) {
			e.log.Debug("version conflict, retrying", slog.String("username", username))
			return retry.RetryableError(err)
		}

		return err
	})
}

// mirror перезаписывает локальное зеркало полученным документом.
// Новые записи сохраняются до удаления устаревших: при сбое записи зеркало остается прежним.
func (e *Engine) mirror(ctx context.Context, doc *partition.Document) error {
	if doc.Kind == partition.KindLegacy {
		if err := e.local.Save(ctx, collectionLegacy, storage.Record{ID: legacyRecordID, Data: doc.LegacyRaw()}); err != nil {
			return err
		}
		return e.local.Clear(ctx, collectionPartitions)
	}

	records := make([]storage.Record, 0, doc.Len())
	for _, username := range doc.Usernames() {
		raw, _ := doc.Raw(username)
		records = append(records, storage.Record{ID: username, Data: raw})
	}
	if err := e.local.Save(ctx, collectionPartitions, records...); err != nil {
		return err
	}

	stored, err := e.local.Load(ctx, collectionPartitions)
	if err != nil {
		return err
	}
	for _, rec := range stored {
		if _, ok := doc.Raw(rec.ID); ok {
			continue
		}
		if err := e.local.Remove(ctx, collectionPartitions, rec.ID); err != nil {
			return err
		}
	}

	return e.local.Clear(ctx, collectionLegacy)
}

func (e *Engine) loadLocal(ctx context.Context, username string) (*LoadResult, error) {
	records, err := e.local.Load(ctx, collectionPartitions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLocalPersistence, err)
	}

	for _, rec := range records {
		if rec.ID != username {
			continue
		}

		p, err := partition.DecodePartition(rec.Data)
		if err != nil {
			return nil, fmt.Errorf("load %s from local snapshot: %w", username, err)
		}

		return &LoadResult{Partition: p, Source: SourceLocal, Timestamp: e.now()}, nil
	}

	return &LoadResult{Partition: partition.Empty(), Source: SourceEmpty, Timestamp: e.now()}, nil
}
