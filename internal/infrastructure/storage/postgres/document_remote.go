package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"retailsync/internal/domain/document"
	"retailsync/internal/domain/partition"
	"retailsync/internal/domain/sync"
)

// DocumentRemote - общий документ напрямую в Postgres, без HTTP-хостинга
type DocumentRemote struct {
	repo document.Repository
	id   string
}

func NewDocumentRemote(repo document.Repository, documentID string) *DocumentRemote {
	return &DocumentRemote{repo: repo, id: documentID}
}

func (r *DocumentRemote) FetchLatest(ctx context.Context) (*partition.Document, error) {
	stored, err := r.repo.Get(ctx, r.id)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			doc := partition.NewDocument()
			doc.Version = partition.VersionAbsent
			return doc, nil
		}
		return nil, fmt.Errorf("%w: %w", sync.ErrRemoteUnavailable, err)
	}

	doc, err := partition.Decode(stored.Data)
	if err != nil {
		return nil, err
	}
	doc.Version = strconv.FormatInt(stored.Version, 10)

	return doc, nil
}

func (r *DocumentRemote) Replace(ctx context.Context, doc *partition.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	version, err := r.write(ctx, doc.Version, data)
	if err != nil {
		if errors.Is(err, document.ErrVersionMismatch) {
			return sync.ErrVersionConflict
		}
		return fmt.Errorf("%w: %w", sync.ErrRemoteUnavailable, err)
	}
	doc.Version = strconv.FormatInt(version, 10)

	return nil
}

// write: документа не было - только создание, версия известна - условная запись, иначе безусловная
func (r *DocumentRemote) write(ctx context.Context, current string, data []byte) (int64, error) {
	switch current {
	case partition.VersionAbsent:
		return r.repo.Create(ctx, r.id, data)
	case "":
		return r.repo.Put(ctx, r.id, data, 0)
	}

	expected, err := strconv.ParseInt(current, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse version %q: %w", current, err)
	}

	return r.repo.Put(ctx, r.id, data, expected)
}
