package document

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	Get(ctx context.Context, id string) (*Document, error)
	Put(ctx context.Context, id string, data []byte, cond Condition) (*Document, error)
}

// Condition - условия записи из заголовков If-Match и If-None-Match
type Condition struct {
	IfMatch     string
	IfNoneMatch string
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With(slog.String("component", "document_service")),
	}
}

func (s *Service) Get(ctx context.Context, id string) (*Document, error) {
	return s.repo.Get(ctx, id)
}

// Put сохраняет документ. If-None-Match: * разрешает только создание,
// If-Match - запись поверх указанной версии, без условий запись безусловная.
func (s *Service) Put(ctx context.Context, id string, data []byte, cond Condition) (*Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' || !json.Valid(data) {
		return nil, ErrInvalidDocument
	}

	version, err := s.write(ctx, id, data, cond)
	if err != nil {
		return nil, err
	}

	s.log.Debug("document stored",
		slog.String("id", id),
		slog.Int64("version", version),
		slog.Int("size", len(data)),
	)

	return &Document{ID: id, Data: data, Version: version}, nil
}

func (s *Service) write(ctx context.Context, id string, data []byte, cond Condition) (int64, error) {
	if ifNoneMatch := strings.TrimSpace(cond.IfNoneMatch); ifNoneMatch != "" {
		if ifNoneMatch != "*" || cond.IfMatch != "" {
			return 0, fmt.Errorf("%w: If-None-Match supports only * without If-Match", ErrInvalidVersion)
		}
		return s.repo.Create(ctx, id, data)
	}

	expected, err := ParseETag(cond.IfMatch)
	if err != nil {
		return 0, err
	}

	return s.repo.Put(ctx, id, data, expected)
}

// ETag форматирует версию документа для заголовка ETag
func ETag(version int64) string {
	return `"` + strconv.FormatInt(version, 10) + `"`
}

// ParseETag разбирает If-Match; пустое значение и * - безусловная запись
func ParseETag(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "*" {
		return 0, nil
	}

	value = strings.TrimPrefix(value, "W/")
	version, err := strconv.ParseInt(strings.Trim(value, `"`), 10, 64)
	if err != nil || version <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVersion, value)
	}

	return version, nil
}
