package logger

import (
	"io"
	"os"

	"golang.org/x/exp/slog"

	"retailsync/internal/app/server/config"
)

// New создает логгер под окружение: local - цветной вывод, dev - JSON с debug, prod - JSON с info
func New(env string) *slog.Logger {
	return NewTo(os.Stdout, env)
}

// NewTo - то же, что New, но с выводом в w
func NewTo(w io.Writer, env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case config.EnvLocal:
		log = setupPrettySlogTo(w)
	case config.EnvDev:
		log = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		log = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	return setupPrettySlogTo(os.Stdout)
}

func setupPrettySlogTo(w io.Writer) *slog.Logger {
	handler := NewPrettyHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler)
}
