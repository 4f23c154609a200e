package notes

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"note-ledger/internal/extractor"
	"note-ledger/internal/model"
	"note-ledger/internal/repository"
	"note-ledger/internal/repository/memory"
	svc "note-ledger/internal/service"
)

var _ svc.NoteService = (*service)(nil)

type service struct {
	noteRepository repository.NoteRepository
	extractor      svc.TextExtractor
	logger         *slog.Logger
}

// NewNoteService создает новый экземпляр сервиса для работы с заметками
func NewNoteService(noteRepository repository.NoteRepository, extractor svc.TextExtractor, logger *slog.Logger) svc.NoteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		noteRepository: noteRepository,
		extractor:      extractor,
		logger:         logger,
	}
}

// Create создает новую заметку с указанными title и content
func (s *service) Create(ctx context.Context, title, content string) (model.Note, error) {
	note := model.Note{
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
	}

	if err := s.noteRepository.Add(ctx, note); err != nil {
		return model.Note{}, err
	}
	s.logger.DebugContext(ctx, "note added", "title", note.Title)

	return note, nil
}

// CreateFromImage распознает текст на изображении и создает заметку.
// Ошибка декодирования или отмена контекста: заметка не создается.
// Ошибка распознавания: заметка создается с пустым содержимым, ошибка попадает в Warning.
func (s *service) CreateFromImage(ctx context.Context, title, imagePath string) (svc.ImportResult, error) {
	text, err := s.extractor.Extract(ctx, strings.TrimSpace(imagePath))

	var warning error
	if err != nil {
		if !errors.Is(err, extractor.ErrOCRFailure) {
			return svc.ImportResult{}, err
		}
		warning = err
		text = ""
	}

	note, err := s.Create(ctx, title, text)
	if err != nil {
		return svc.ImportResult{}, err
	}

	return svc.ImportResult{Note: note, Warning: warning}, nil
}

// Get возвращает заметку по позиции
func (s *service) Get(ctx context.Context, position int) (model.Note, error) {
	if position < 1 {
		return model.Note{}, fmt.Errorf("position %d: %w", position, svc.ErrInvalidIndex)
	}

	note, err := s.noteRepository.Get(ctx, position-1)
	if err != nil {
		return model.Note{}, mapIndexError(position, err)
	}

	return note, nil
}

// List возвращает список всех заметок
func (s *service) List(ctx context.Context) iter.Seq2[int, string] {
	return s.noteRepository.List(ctx)
}

// Count возвращает количество заметок
func (s *service) Count(ctx context.Context) int {
	return s.noteRepository.Len(ctx)
}

// Remove удаляет заметку по позиции
func (s *service) Remove(ctx context.Context, position int) (model.Note, error) {
	// Позиция 0 не должна превращаться в индекс -1
	if position < 1 {
		return model.Note{}, fmt.Errorf("position %d: %w", position, svc.ErrInvalidIndex)
	}

	note, err := s.noteRepository.RemoveAt(ctx, position-1)
	if err != nil {
		return model.Note{}, mapIndexError(position, err)
	}
	s.logger.DebugContext(ctx, "note removed", "position", position, "title", note.Title)

	return note, nil
}

func mapIndexError(position int, err error) error {
	if errors.Is(err, memory.ErrIndexOutOfRange) {
		return fmt.Errorf("position %d: %w", position, svc.ErrInvalidIndex)
	}
	return err
}
