package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// HeaderMasterKey - заголовок с ключом доступа к размещенному документу
const HeaderMasterKey = "X-Master-Key"

// Auth проверяет ключ доступа к размещенному документу
type Auth struct {
	key string
	log *slog.Logger
}

// New создает middleware; пустой ключ закрывает доступ полностью
func New(key string, log *slog.Logger) *Auth {
	return &Auth{
		key: key,
		log: log.With(slog.String("component", "auth_middleware")),
	}
}

// Middleware возвращает middleware для Huma с сигнатурой func(ctx Context, next func(Context))
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		key := ctx.Header(HeaderMasterKey)

		if a.key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(a.key)) != 1 {
			a.log.Warn("invalid master key",
				slog.String("path", ctx.URL().Path),
				slog.Bool("key_present", key != ""),
			)
			ctx.SetStatus(http.StatusUnauthorized)
			ctx.SetHeader("Content-Type", "application/json")

			if err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
				"error": "Unauthorized",
			}); err != nil {
				a.log.Error("encode response", slog.String("error", err.Error()))
			}
			return
		}

		next(ctx)
	}
}
