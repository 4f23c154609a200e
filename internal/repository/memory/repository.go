package memory

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"sync"

	"note-ledger/internal/model"
	"note-ledger/internal/repository"
)

// ErrIndexOutOfRange возвращается, когда индекс выходит за границы набора
var ErrIndexOutOfRange = errors.New("index out of range")

var _ repository.NoteRepository = (*repo)(nil)

type repo struct {
	mu    sync.RWMutex
	notes []model.Note
}

// NewRepository создает новый экземпляр in-memory репозитория на основе слайса
func NewRepository() repository.NoteRepository {
	return &repo{}
}

// Add добавляет заметку в конец набора
func (r *repo) Add(ctx context.Context, note model.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notes = append(r.notes, note)

	return nil
}

// RemoveAt удаляет заметку по индексу, последующие заметки сдвигаются на одну позицию
func (r *repo) RemoveAt(ctx context.Context, index int) (model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.notes) {
		return model.Note{}, fmt.Errorf("remove %d of %d: %w", index, len(r.notes), ErrIndexOutOfRange)
	}

	note := r.notes[index]
	r.notes = slices.Delete(r.notes, index, index+1)

	return note, nil
}

// Get возвращает заметку по индексу
func (r *repo) Get(ctx context.Context, index int) (model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.notes) {
		return model.Note{}, fmt.Errorf("get %d of %d: %w", index, len(r.notes), ErrIndexOutOfRange)
	}

	return r.notes[index], nil
}

// List возвращает заголовки в порядке добавления.
// Набор читается заново при каждом обходе, поэтому последовательность можно обходить повторно.
func (r *repo) List(ctx context.Context) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		r.mu.RLock()
		titles := make([]string, len(r.notes))
		for i, note := range r.notes {
			titles[i] = note.Title
		}
		r.mu.RUnlock()

		for i, title := range titles {
			if !yield(i+1, title) {
				return
			}
		}
	}
}

// Len возвращает количество заметок
func (r *repo) Len(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.notes)
}
