package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"retailsync/internal/domain/sync"
)

type Handler struct {
	service    sync.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

// NewHandler: service может быть nil, если процесс только размещает документ
func NewHandler(service sync.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	if h.service == nil {
		return &Output{Body: Response{Status: StatusOK}}, nil
	}

	status, err := h.service.Status(ctx)
	if err != nil {
		h.log.Error("local snapshot is unavailable", slog.String("error", err.Error()))
		return nil, huma.Error503ServiceUnavailable("local snapshot is unavailable", err)
	}

	out := &Output{Body: Response{Status: StatusOK, Sync: status}}
	if !status.RemoteReachable {
		h.log.Debug("remote document is unreachable", slog.String("error", status.RemoteError))
		out.Body.Status = StatusDegraded
	}

	return out, nil
}
