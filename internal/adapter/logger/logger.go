package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/sm8ta/station_control_console/internal/core/ports"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

type LoggerAdapter struct {
	logger *slog.Logger
}

func NewLoggerAdapter(env string) ports.LoggerPort {
	return newLogger(env, os.Stdout)
}

// NewDiscard returns a logger that writes nowhere.
func NewDiscard() ports.LoggerPort {
	return newLogger(envProd, io.Discard)
}

func newLogger(env string, w io.Writer) *LoggerAdapter {
	var log *slog.Logger

	switch env {
	case envLocal, envDev:
		log = slog.New(
			slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return &LoggerAdapter{
		logger: log,
	}
}

func (l *LoggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.log(slog.LevelInfo, msg, fields)
}

func (l *LoggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.log(slog.LevelError, msg, fields)
}

func (l *LoggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.log(slog.LevelDebug, msg, fields)
}

func (l *LoggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.log(slog.LevelWarn, msg, fields)
}

func (l *LoggerAdapter) log(level slog.Level, msg string, fields map[string]interface{}) {
	if fields == nil {
		l.logger.Log(context.Background(), level, msg)
		return
	}
	l.logger.Log(context.Background(), level, msg, slog.Any("fields", fields))
}

var _ ports.LoggerPort = (*LoggerAdapter)(nil)
