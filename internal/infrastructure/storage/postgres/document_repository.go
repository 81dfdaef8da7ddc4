package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"retailsync/internal/domain/document"
)

type DocumentRepository struct {
	db  Querier
	log *slog.Logger
}

func NewDocumentRepository(db Querier, log *slog.Logger) *DocumentRepository {
	return &DocumentRepository{
		db:  db,
		log: log.With("component", "document_repository"),
	}
}

func (r *DocumentRepository) Get(ctx context.Context, id string) (*document.Document, error) {
	const query = `
		SELECT id, data, version, updated_at
		FROM documents
		WHERE id = $1`

	var doc document.Document
	err := r.db.QueryRow(ctx, query, id).Scan(&doc.ID, &doc.Data, &doc.Version, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, document.ErrNotFound
		}
		r.log.Error("failed to get document", "id", id, "error", err)
		return nil, fmt.Errorf("get document: %w", err)
	}

	return &doc, nil
}

func (r *DocumentRepository) Put(ctx context.Context, id string, data []byte, expectedVersion int64) (int64, error) {
	if expectedVersion == 0 {
		return r.upsert(ctx, id, data)
	}

	const query = `
		UPDATE documents
		SET data = $2, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $3
		RETURNING version`

	var version int64
	err := r.db.QueryRow(ctx, query, id, string(data), expectedVersion).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.log.Debug("version mismatch", "id", id, "expected", expectedVersion)
			return 0, document.ErrVersionMismatch
		}
		r.log.Error("failed to update document", "id", id, "error", err)
		return 0, fmt.Errorf("update document: %w", err)
	}

	return version, nil
}

func (r *DocumentRepository) upsert(ctx context.Context, id string, data []byte) (int64, error) {
	const query = `
		INSERT INTO documents (id, data, version, updated_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (id) DO UPDATE
		SET data = EXCLUDED.data, version = documents.version + 1, updated_at = NOW()
		RETURNING version`

	var version int64
	if err := r.db.QueryRow(ctx, query, id, string(data)).Scan(&version); err != nil {
		r.log.Error("failed to upsert document", "id", id, "error", err)
		return 0, fmt.Errorf("upsert document: %w", err)
	}

	return version, nil
}

func (r *DocumentRepository) Create(ctx context.Context, id string, data []byte) (int64, error) {
	const query = `
		INSERT INTO documents (id, data, version, updated_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (id) DO NOTHING
		RETURNING version`

	var version int64
	err := r.db.QueryRow(ctx, query, id, string(data)).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.log.Debug("document already exists", "id", id)
			return 0, document.ErrVersionMismatch
		}
		r.log.Error("failed to create document", "id", id, "error", err)
		return 0, fmt.Errorf("create document: %w", err)
	}

	return version, nil
}
