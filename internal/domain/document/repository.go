package document

import "context"

type Repository interface {
	Get(ctx context.Context, id string) (*Document, error)
	// Put записывает документ. expectedVersion = 0 - безусловная запись,
	// иначе запись только поверх этой версии (ErrVersionMismatch при расхождении)
	Put(ctx context.Context, id string, data []byte, expectedVersion int64) (int64, error)
	// Create создает документ; если он уже есть - ErrVersionMismatch
	Create(ctx context.Context, id string, data []byte) (int64, error)
}
