package sync

import (
	"time"

	"retailsync/internal/domain/partition"
)

// Source - откуда взят раздел при загрузке
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
	SourceEmpty  Source = "empty"
)

// Коллекции локального зеркала общего документа
const (
	collectionPartitions = "partitions"
	collectionLegacy     = "legacy"
	legacyRecordID       = "document"
)

// LoadResult результат загрузки раздела
type LoadResult struct {
	Partition partition.UserPartition `json:"data"`
	Source    Source                  `json:"source"`
	Timestamp time.Time               `json:"timestamp"`
}

// SaveResult результат сохранения раздела.
// Synced=false означает деградированный режим: данные сохранены только локально.
type SaveResult struct {
	Synced     bool      `json:"synced"`
	Warning    string    `json:"warning,omitempty"`
	LastUpdate time.Time `json:"lastUpdate"`
}

// Status состояние локального зеркала и удаленного документа
type Status struct {
	RemoteReachable bool      `json:"remote_reachable"`
	RemoteError     string    `json:"remote_error,omitempty"`
	RemoteKind      string    `json:"remote_kind,omitempty"`
	RemoteVersion   string    `json:"remote_version,omitempty"`
	RemoteUsers     []string  `json:"remote_users,omitempty"`
	LocalUsers      []string  `json:"local_users"`
	LocalLegacy     bool      `json:"local_legacy"`
	CheckedAt       time.Time `json:"checked_at"`
}

// Config настройки движка синхронизации
type Config struct {
	// MaxRetries - сколько раз повторять чтение-изменение-запись при конфликте версий
	MaxRetries uint64
	RetryDelay time.Duration
}

// DefaultConfig возвращает настройки по умолчанию
func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		RetryDelay: 200 * time.Millisecond,
	}
}
