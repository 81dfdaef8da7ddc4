package remote

import (
	"context"

	"retailsync/internal/domain/partition"
	"retailsync/internal/domain/sync"
)

// Disabled используется, когда удаленное хранилище не настроено
type Disabled struct{}

func (Disabled) FetchLatest(context.Context) (*partition.Document, error) {
	return nil, sync.ErrRemoteUnavailable
}

func (Disabled) Replace(context.Context, *partition.Document) error {
	return sync.ErrRemoteUnavailable
}
