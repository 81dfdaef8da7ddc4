package health

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) healthCheckOp() huma.Operation {
	return huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/v1/health",
		Summary:     "Состояние синхронизации",
		Description: "Локальное зеркало и доступность общего документа. 503 - локальное хранилище не читается",
		Tags:        []string{"health"},
		Middlewares: h.middleware,
	}
}
