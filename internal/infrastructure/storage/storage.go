package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"
)

var (
	ErrEmptyID           = errors.New("record id is empty")
	ErrInvalidCollection = errors.New("invalid collection name")
)

var collectionName = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Record - запись локального хранилища
type Record struct {
	ID        string          `json:"id"`
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Store - локальное хранилище коллекций записей на устройстве
type Store interface {
	// Save добавляет или заменяет записи по id
	Save(ctx context.Context, collection string, records ...Record) error
	// Load возвращает все записи коллекции; для пустой коллекции - пустой срез
	Load(ctx context.Context, collection string) ([]Record, error)
	Remove(ctx context.Context, collection, id string) error
	Clear(ctx context.Context, collection string) error
	Close() error
}

func validate(collection string, records []Record) error {
	if !collectionName.MatchString(collection) {
		return fmt.Errorf("%w: %q", ErrInvalidCollection, collection)
	}
	for _, rec := range records {
		if rec.ID == "" {
			return ErrEmptyID
		}
	}
	return nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}
