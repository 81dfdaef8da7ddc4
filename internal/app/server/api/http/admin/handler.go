package admin

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"

	"retailsync/internal/domain/usage"
)

// Username - единственный пользователь, которому доступна статистика
const Username = "admin"

type Handler struct {
	service      usage.Servicer
	passwordHash string
	log          *slog.Logger
	middleware   huma.Middlewares
}

// NewHandler создает обработчик; пустой passwordHash отключает проверку пароля
func NewHandler(service usage.Servicer, passwordHash string, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:      service,
		passwordHash: passwordHash,
		log:          log,
		middleware:   mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.usageOp(), h.usage)
}

func (h *Handler) usage(ctx context.Context, input *usageInput) (*usageOutput, error) {
	if input.Body.Username != Username {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if h.passwordHash != "" {
		err := bcrypt.CompareHashAndPassword([]byte(h.passwordHash), []byte(input.Body.Password))
		if err != nil {
			h.log.Warn("admin password mismatch")
			return nil, huma.Error401Unauthorized("Unauthorized")
		}
	}

	report, err := h.service.Report(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("usage report failed", err)
	}

	return &usageOutput{Body: report}, nil
}
