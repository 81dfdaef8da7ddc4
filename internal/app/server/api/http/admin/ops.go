package admin

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) usageOp() huma.Operation {
	return huma.Operation{
		OperationID: "admin-usage",
		Method:      http.MethodPost,
		Path:        "/api/admin/usage",
		Summary:     "Статистика заполнения общего документа",
		Description: "Размер документа относительно лимита и размеры разделов пользователей",
		Tags:        []string{"admin"},
		Middlewares: h.middleware,
	}
}
