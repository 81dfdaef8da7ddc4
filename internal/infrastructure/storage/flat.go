package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/moby/sys/atomicwriter"
)

// FlatStorage - запасное хранилище: коллекция целиком лежит в одном JSON-файле
// и всегда перезаписывается атомарно.
type FlatStorage struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

func NewFlatStorage(dir string) (*FlatStorage, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create flat storage dir: %w", err)
	}

	return &FlatStorage{dir: dir, now: utcNow}, nil
}

func (f *FlatStorage) Save(_ context.Context, collection string, records ...Record) error {
	if err := validate(collection, records); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	existing, err := f.read(collection)
	if err != nil {
		return err
	}

	index := make(map[string]int, len(existing))
	for i, rec := range existing {
		index[rec.ID] = i
	}

	updatedAt := f.now()
	for _, rec := range records {
		rec.UpdatedAt = updatedAt
		if i, ok := index[rec.ID]; ok {
			existing[i] = rec
			continue
		}
		index[rec.ID] = len(existing)
		existing = append(existing, rec)
	}

	return f.write(collection, existing)
}

func (f *FlatStorage) Load(_ context.Context, collection string) ([]Record, error) {
	if err := validate(collection, nil); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return f.read(collection)
}

func (f *FlatStorage) Remove(_ context.Context, collection, id string) error {
	if err := validate(collection, nil); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	existing, err := f.read(collection)
	if err != nil {
		return err
	}

	kept := existing[:0]
	for _, rec := range existing {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(existing) {
		return nil
	}

	return f.write(collection, kept)
}

func (f *FlatStorage) Clear(_ context.Context, collection string) error {
	if err := validate(collection, nil); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path(collection))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear collection %s: %w", collection, err)
	}

	return nil
}

func (f *FlatStorage) Close() error {
	return nil
}

func (f *FlatStorage) path(collection string) string {
	return filepath.Join(f.dir, collection+".json")
}

func (f *FlatStorage) read(collection string) ([]Record, error) {
	data, err := os.ReadFile(f.path(collection))
	if errors.Is(err, os.ErrNotExist) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", collection, err)
	}

	records := make([]Record, 0)
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", collection, err)
	}

	return records, nil
}

func (f *FlatStorage) write(collection string, records []Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", collection, err)
	}

	if err := atomicwriter.WriteFile(f.path(collection), data, 0o600); err != nil {
		return fmt.Errorf("write collection %s: %w", collection, err)
	}

	return nil
}
