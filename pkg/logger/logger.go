package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger оборачивает slog.Logger и сохраняет короткий API приложения:
// Debug/Info/Warn(msg, kv...) и Error(msg, err, kv...).
type Logger struct {
	slog *slog.Logger
}

// New создает logger с текстовым выводом в stdout
func New(level string) *Logger {
	return NewWithOptions(os.Stdout, level, "text")
}

// NewWithOptions создает logger с указанным writer и форматом ("text" или "json")
func NewWithOptions(w io.Writer, level, format string) *Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return &Logger{slog: slog.New(handler)}
}

// Discard возвращает logger, который ничего не пишет (для тестов)
func Discard() *Logger {
	return &Logger{slog: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.slog.Debug(msg, args...)
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.slog.Info(msg, args...)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.slog.Warn(msg, args...)
}

func (l *Logger) Error(msg string, err error, args ...interface{}) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.slog.Error(msg, args...)
}

// With возвращает дочерний logger с постоянными атрибутами
func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{slog: l.slog.With(args...)}
}

// Slog отдает исходный slog.Logger для библиотек, которые его принимают
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}
