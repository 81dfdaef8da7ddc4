package sync

import (
	"context"

	"retailsync/internal/domain/partition"
	"retailsync/internal/infrastructure/storage"
)

// LocalStore - локальное хранилище устройства
type LocalStore interface {
	Save(ctx context.Context, collection string, records ...storage.Record) error
	Load(ctx context.Context, collection string) ([]storage.Record, error)
	Remove(ctx context.Context, collection, id string) error
	Clear(ctx context.Context, collection string) error
}

// RemoteClient - общий удаленный документ всех пользователей.
// Протокол: прочитать последнюю версию целиком, записать документ целиком.
type RemoteClient interface {
	// FetchLatest возвращает текущий документ; отсутствие документа - пустой документ, не ошибка.
	// Хранилище с версиями помечает отсутствующий документ версией partition.VersionAbsent
	FetchLatest(ctx context.Context) (*partition.Document, error)
	// Replace перезаписывает документ целиком. Если doc.Version не пуст,
	// запись условная и при расхождении версий возвращается ErrVersionConflict.
	// Для VersionAbsent запись только создает документ
	Replace(ctx context.Context, doc *partition.Document) error
}
