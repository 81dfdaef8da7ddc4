package storage

import (
	"context"
	"sync"
	"time"
)

// MemoryStorage - временное in-memory хранилище, данные живут до завершения процесса
type MemoryStorage struct {
	mu          sync.RWMutex
	collections map[string][]Record
	now         func() time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		collections: make(map[string][]Record),
		now:         utcNow,
	}
}

func (m *MemoryStorage) Save(_ context.Context, collection string, records ...Record) error {
	if err := validate(collection, records); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing := m.collections[collection]
	updatedAt := m.now()
	for _, rec := range records {
		rec.UpdatedAt = updatedAt
		rec.Data = append([]byte(nil), rec.Data...)

		replaced := false
		for i := range existing {
			if existing[i].ID == rec.ID {
				existing[i] = rec
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, rec)
		}
	}
	m.collections[collection] = existing

	return nil
}

func (m *MemoryStorage) Load(_ context.Context, collection string) ([]Record, error) {
	if err := validate(collection, nil); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]Record{}, m.collections[collection]...), nil
}

func (m *MemoryStorage) Remove(_ context.Context, collection, id string) error {
	if err := validate(collection, nil); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing := m.collections[collection]
	kept := make([]Record, 0, len(existing))
	for _, rec := range existing {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	m.collections[collection] = kept

	return nil
}

func (m *MemoryStorage) Clear(_ context.Context, collection string) error {
	if err := validate(collection, nil); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.collections, collection)

	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}
