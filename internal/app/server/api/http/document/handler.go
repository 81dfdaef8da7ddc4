package document

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"retailsync/internal/domain/document"
)

type Handler struct {
	service    document.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service document.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.getOp(), h.get)
	huma.Register(api, h.putOp(), h.put)
}

func (h *Handler) get(ctx context.Context, input *getInput) (*getOutput, error) {
	doc, err := h.service.Get(ctx, input.ID)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			return nil, huma.Error404NotFound("document not found")
		}
		h.log.Error("get document failed", slog.String("id", input.ID), slog.String("error", err.Error()))
		return nil, huma.Error500InternalServerError("get document failed", err)
	}

	return &getOutput{
		ETag: document.ETag(doc.Version),
		Body: doc.Data,
	}, nil
}

func (h *Handler) put(ctx context.Context, input *putInput) (*putOutput, error) {
	doc, err := h.service.Put(ctx, input.ID, input.RawBody, document.Condition{
		IfMatch:     input.IfMatch,
		IfNoneMatch: input.IfNoneMatch,
	})
	if err != nil {
		switch {
		case errors.Is(err, document.ErrVersionMismatch):
			return nil, huma.Error412PreconditionFailed("document version mismatch")
		case errors.Is(err, document.ErrInvalidDocument), errors.Is(err, document.ErrInvalidVersion):
			return nil, huma.Error400BadRequest(err.Error())
		}
		h.log.Error("put document failed", slog.String("id", input.ID), slog.String("error", err.Error()))
		return nil, huma.Error500InternalServerError("put document failed", err)
	}

	return &putOutput{
		ETag: document.ETag(doc.Version),
		Body: putResponse{Success: true, Version: doc.Version},
	}, nil
}
