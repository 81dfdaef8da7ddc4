//POST /api/load            # Раздел пользователя (локальное зеркало при недоступности документа)
//POST /api/save            # Сохранить раздел: локально, затем в общий документ
//POST /api/admin/usage     # Заполнение общего документа (admin)
//GET  /api/v1/health       # Состояние синхронизации: зеркало и общий документ
//GET  /b/{id}/latest       # Размещенный документ (X-Master-Key)
//PUT  /b/{id}              # Записать документ целиком (X-Master-Key, If-Match / If-None-Match: *)

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	adminAPI "retailsync/internal/app/server/api/http/admin"
	documentAPI "retailsync/internal/app/server/api/http/document"
	healthAPI "retailsync/internal/app/server/api/http/health"
	"retailsync/internal/app/server/api/http/middleware"
	"retailsync/internal/app/server/api/http/middleware/auth"
	"retailsync/internal/app/server/api/http/middleware/logger"
	partitionAPI "retailsync/internal/app/server/api/http/partition"
	"retailsync/internal/domain/document"
	"retailsync/internal/domain/sync"
	"retailsync/internal/domain/usage"
)

// Services - доменные сервисы, которые обслуживает API
type Services struct {
	Sync  sync.Servicer
	Usage usage.Servicer
	// Document - размещенный документ; nil - маршруты /b/ не регистрируются
	Document document.Servicer
}

type Options struct {
	DocumentAPIKey    string
	AdminPasswordHash string
}

type Handlers struct {
	Health    *healthAPI.Handler
	Partition *partitionAPI.Handler
	Admin     *adminAPI.Handler
	Document  *documentAPI.Handler
}

// New создает *chi.Mux с ВСЕМИ операциями через huma.Register
func New(services Services, opts Options, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Retailsync API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"masterKey": {Type: "apiKey", In: "header", Name: auth.HeaderMasterKey},
	}

	API := humachi.New(mux, config)

	h := handlers(services, opts, log)
	h.Health.SetupRoutes(API)
	h.Partition.SetupRoutes(API)
	h.Admin.SetupRoutes(API)
	if h.Document != nil {
		h.Document.SetupRoutes(API)
	}

	return mux
}

func handlers(services Services, opts Options, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(services.Sync, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	partitionHandler := partitionAPI.NewHandler(services.Sync, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	adminHandler := adminAPI.NewHandler(services.Usage, opts.AdminPasswordHash, log, middlewares.GetAllAndClear())

	h := &Handlers{
		Health:    healthHandler,
		Partition: partitionHandler,
		Admin:     adminHandler,
	}

	if services.Document != nil {
		authMW := auth.New(opts.DocumentAPIKey, log)
		middlewares.Add(loggerMW.Middleware())
		middlewares.Add(authMW.Middleware())
		h.Document = documentAPI.NewHandler(services.Document, log, middlewares.GetAllAndClear())
	}

	return h
}
