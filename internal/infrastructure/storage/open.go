package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/exp/slog"
)

const (
	sqliteFileName = "retailsync.db"
	flatDirName    = "collections"
)

// Open выбирает бэкенд локального хранилища.
// Пустой dir означает хранение в памяти. Если SQLite недоступен
// (например, бинарник собран без cgo), используется файловое хранилище.
func Open(dir string, log *slog.Logger) (Store, error) {
	log = log.With(slog.String("component", "local_storage"))

	if dir == "" {
		log.Debug("using in-memory storage")
		return NewMemoryStorage(), nil
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	sqliteStorage, err := NewSQLiteStorage(filepath.Join(dir, sqliteFileName))
	if err == nil {
		log.Debug("using sqlite storage", slog.String("dir", dir))
		return sqliteStorage, nil
	}

	log.Warn("sqlite unavailable, falling back to flat storage", slog.String("error", err.Error()))

	flatStorage, err := NewFlatStorage(filepath.Join(dir, flatDirName))
	if err != nil {
		return nil, fmt.Errorf("init flat storage: %w", err)
	}

	return flatStorage, nil
}
