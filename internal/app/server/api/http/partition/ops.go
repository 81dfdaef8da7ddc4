package partition

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) loadOp() huma.Operation {
	return huma.Operation{
		OperationID: "partition-load",
		Method:      http.MethodPost,
		Path:        "/api/load",
		Summary:     "Загрузить раздел пользователя",
		Description: "Возвращает раздел из общего документа, при недоступности хранилища - из локального зеркала",
		Tags:        []string{"partition"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) saveOp() huma.Operation {
	return huma.Operation{
		OperationID: "partition-save",
		Method:      http.MethodPost,
		Path:        "/api/save",
		Summary:     "Сохранить раздел пользователя",
		Description: "Сохраняет раздел локально и затем в общий документ; synced=false означает, что запись в общий документ отложена",
		Tags:        []string{"partition"},
		Middlewares: h.middleware,
	}
}
