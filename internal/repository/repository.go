package repository

import (
	"context"
	"iter"

	"note-ledger/internal/model"
)

// NoteRepository интерфейс для работы с упорядоченным набором заметок.
// Все индексы в этом интерфейсе начинаются с нуля.
type NoteRepository interface {
	// Add добавляет заметку в конец набора
	Add(ctx context.Context, note model.Note) error

	// RemoveAt удаляет заметку по индексу и возвращает её
	RemoveAt(ctx context.Context, index int) (model.Note, error)

	// Get возвращает заметку по индексу
	Get(ctx context.Context, index int) (model.Note, error)

	// List возвращает последовательность пар (позиция с единицы, заголовок)
	List(ctx context.Context) iter.Seq2[int, string]

	// Len возвращает количество заметок
	Len(ctx context.Context) int
}
