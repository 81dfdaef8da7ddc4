package document

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) getOp() huma.Operation {
	return huma.Operation{
		OperationID: "document-get-latest",
		Method:      http.MethodGet,
		Path:        "/b/{id}/latest",
		Summary:     "Последняя версия документа",
		Tags:        []string{"document"},
		Security:    []map[string][]string{{"masterKey": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) putOp() huma.Operation {
	return huma.Operation{
		OperationID: "document-put",
		Method:      http.MethodPut,
		Path:        "/b/{id}",
		Summary:     "Записать документ целиком",
		Description: "При заданном If-Match запись выполняется только поверх указанной версии, " +
			"при If-None-Match: * - только если документа еще нет, иначе 412",
		Tags:        []string{"document"},
		Security:    []map[string][]string{{"masterKey": {}}},
		Middlewares: h.middleware,
	}
}
