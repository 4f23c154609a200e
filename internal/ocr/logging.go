package ocr

import (
	"context"
	"log/slog"
	"time"
)

type loggingEngine struct {
	next   Engine
	logger *slog.Logger
}

// WithLogging оборачивает движок и логирует информацию о каждом вызове:
// - начало распознавания (движок и файл)
// - время выполнения
// - результат (ошибка или длина текста)
func WithLogging(next Engine, logger *slog.Logger) Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &loggingEngine{next: next, logger: logger}
}

func (e *loggingEngine) Name() string { return e.next.Name() }

func (e *loggingEngine) Recognize(ctx context.Context, input Input) (Result, error) {
	e.logger.DebugContext(ctx, "ocr started", "engine", e.next.Name(), "path", input.Path, "languages", input.Languages)

	start := time.Now()
	res, err := e.next.Recognize(ctx, input)
	duration := time.Since(start)

	if err != nil {
		e.logger.DebugContext(ctx, "ocr failed", "engine", e.next.Name(), "error", err, "duration", duration)
		return res, err
	}

	e.logger.DebugContext(ctx, "ocr completed", "engine", e.next.Name(), "chars", len(res.Text), "duration", duration)
	return res, nil
}
