package service

import (
	"context"
	"errors"
	"iter"

	"note-ledger/internal/model"
)

// ErrInvalidIndex возвращается, когда позиция заметки вне диапазона [1, количество заметок]
var ErrInvalidIndex = errors.New("invalid index")

// TextExtractor извлекает текст из изображения по пути к файлу
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// ImportResult результат создания заметки из изображения
type ImportResult struct {
	Note model.Note
	// Warning не nil, если распознавание не удалось и заметка создана с пустым содержимым
	Warning error
}

// NoteService интерфейс для бизнес-логики работы с заметками.
// Позиции заметок в этом интерфейсе начинаются с единицы.
type NoteService interface {
	// Create создает новую заметку с указанными title и content
	Create(ctx context.Context, title, content string) (model.Note, error)

	// CreateFromImage создает заметку, содержимое которой распознано с изображения
	CreateFromImage(ctx context.Context, title, imagePath string) (ImportResult, error)

	// Get возвращает заметку по позиции
	Get(ctx context.Context, position int) (model.Note, error)

	// List возвращает пары (позиция, заголовок)
	List(ctx context.Context) iter.Seq2[int, string]

	// Count возвращает количество заметок
	Count(ctx context.Context) int

	// Remove удаляет заметку по позиции и возвращает её
	Remove(ctx context.Context, position int) (model.Note, error)
}
