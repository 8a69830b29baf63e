package logging

import (
	"io"
	"log/slog"
	"os"
)

// New はJSONのロガーを返す。devならDebugまで出す
func New(env string) *slog.Logger {
	return NewWithWriter(os.Stdout, env)
}

func NewWithWriter(w io.Writer, env string) *slog.Logger {
	level := slog.LevelInfo
	if env == "" || env == "dev" {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(h)
}

// Discard はテスト用
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
