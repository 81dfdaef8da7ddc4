package partition

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"retailsync/internal/domain/partition"
	"retailsync/internal/domain/sync"
)

type Handler struct {
	service    sync.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service sync.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.loadOp(), h.load)
	huma.Register(api, h.saveOp(), h.save)
}

func (h *Handler) load(ctx context.Context, input *loadInput) (*loadOutput, error) {
	username := input.Body.Username
	if strings.TrimSpace(username) == "" {
		return rejectedLoad("Username required"), nil
	}

	result, err := h.service.Load(ctx, username)
	if err != nil {
		if errors.Is(err, sync.ErrValidation) {
			return rejectedLoad(err.Error()), nil
		}
		if errors.Is(err, partition.ErrMalformedPartition) {
			return nil, huma.Error422UnprocessableEntity("stored partition is malformed", err)
		}
		h.log.Error("load failed", slog.String("username", username), slog.String("error", err.Error()))
		return nil, huma.Error500InternalServerError("load failed", err)
	}

	return &loadOutput{
		Body: loadResponse{
			Success:   true,
			Data:      result.Partition,
			Source:    string(result.Source),
			Timestamp: result.Timestamp,
		},
	}, nil
}

// rejectedLoad - ответ на некорректное имя: пустой раздел и текст ошибки
func rejectedLoad(message string) *loadOutput {
	return &loadOutput{
		Body: loadResponse{
			Success:   false,
			Data:      partition.Empty(),
			Timestamp: time.Now().UTC(),
			Error:     message,
		},
	}
}

func (h *Handler) save(ctx context.Context, input *saveInput) (*saveOutput, error) {
	username := input.Body.Username
	if strings.TrimSpace(username) == "" {
		return nil, huma.Error400BadRequest("Username required")
	}

	raw := bytes.TrimSpace(input.Body.Data)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, huma.Error400BadRequest("data must be an object")
	}

	data, err := partition.DecodePartition(raw)
	if err != nil {
		return nil, huma.Error400BadRequest("data is not a valid partition", err)
	}

	result, err := h.service.Save(ctx, username, data)
	if err != nil {
		if errors.Is(err, sync.ErrValidation) {
			return nil, huma.Error400BadRequest(err.Error())
		}
		h.log.Error("save failed", slog.String("username", username), slog.String("error", err.Error()))
		return nil, huma.Error500InternalServerError("save failed", err)
	}

	message := "Data saved"
	if !result.Synced {
		message = result.Warning
	}

	return &saveOutput{
		Body: saveResponse{
			Success:    true,
			Synced:     result.Synced,
			Message:    message,
			LastUpdate: result.LastUpdate,
		},
	}, nil
}
