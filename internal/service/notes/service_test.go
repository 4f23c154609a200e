package notes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"testing"

	"note-ledger/internal/extractor"
	"note-ledger/internal/model"
	"note-ledger/internal/repository"
	"note-ledger/internal/repository/memory"
	svc "note-ledger/internal/service"
)

// mockRepository - простой mock репозитория для тестирования
type mockRepository struct {
	notes       []model.Note
	addError    error
	removeCalls int
}

func (m *mockRepository) Add(ctx context.Context, note model.Note) error {
	if m.addError != nil {
		return m.addError
	}
	m.notes = append(m.notes, note)
	return nil
}

func (m *mockRepository) RemoveAt(ctx context.Context, index int) (model.Note, error) {
	m.removeCalls++
	if index < 0 || index >= len(m.notes) {
		return model.Note{}, memory.ErrIndexOutOfRange
	}
	note := m.notes[index]
	m.notes = append(m.notes[:index], m.notes[index+1:]...)
	return note, nil
}

func (m *mockRepository) Get(ctx context.Context, index int) (model.Note, error) {
	if index < 0 || index >= len(m.notes) {
		return model.Note{}, memory.ErrIndexOutOfRange
	}
	return m.notes[index], nil
}

func (m *mockRepository) List(ctx context.Context) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, note := range m.notes {
			if !yield(i+1, note.Title) {
				return
			}
		}
	}
}

func (m *mockRepository) Len(ctx context.Context) int {
	return len(m.notes)
}

// Проверяем, что mockRepository реализует интерфейс
var _ repository.NoteRepository = (*mockRepository)(nil)

// mockExtractor - mock распознавания текста
type mockExtractor struct {
	text     string
	err      error
	lastPath string
}

func (m *mockExtractor) Extract(ctx context.Context, path string) (string, error) {
	m.lastPath = path
	return m.text, m.err
}

func newTestService(repo repository.NoteRepository, ex svc.TextExtractor) svc.NoteService {
	return NewNoteService(repo, ex, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func lines(s svc.NoteService) []string {
	var out []string
	for pos, title := range s.List(context.Background()) {
		out = append(out, fmt.Sprintf("%d. %s", pos, title))
	}
	return out
}

func TestNoteService_Create_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := &mockRepository{}
	service := newTestService(mockRepo, &mockExtractor{})

	note, err := service.Create(ctx, "Test Note", "Test Content")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if note.Title != "Test Note" {
		t.Errorf("Expected title %q, got %q", "Test Note", note.Title)
	}

	if note.Content != "Test Content" {
		t.Errorf("Expected content %q, got %q", "Test Content", note.Content)
	}

	if len(mockRepo.notes) != 1 {
		t.Fatalf("Expected 1 note in repository, got %d", len(mockRepo.notes))
	}
}

func TestNoteService_Create_EmptyTitleAllowed(t *testing.T) {
	ctx := context.Background()
	mockRepo := &mockRepository{}
	service := newTestService(mockRepo, &mockExtractor{})

	if _, err := service.Create(ctx, "   ", "content"); err != nil {
		t.Fatalf("Expected empty title to be accepted, got: %v", err)
	}

	if got := lines(service); len(got) != 1 || got[0] != "1. " {
		t.Errorf("Unexpected listing: %q", got)
	}
}

func TestNoteService_Create_TrimsContent(t *testing.T) {
	service := newTestService(&mockRepository{}, &mockExtractor{})

	note, err := service.Create(context.Background(), " Title ", "  Test Content  ")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if note.Title != "Title" || note.Content != "Test Content" {
		t.Errorf("Expected trimmed note, got: %+v", note)
	}
}

func TestNoteService_Create_RepositoryError(t *testing.T) {
	mockRepo := &mockRepository{addError: errors.New("add error")}
	service := newTestService(mockRepo, &mockExtractor{})

	note, err := service.Create(context.Background(), "T", "C")
	if err == nil {
		t.Fatal("Expected error from repository")
	}

	if note != (model.Note{}) {
		t.Error("Expected empty note on error")
	}
}

func TestNoteService_List_RoundTrip(t *testing.T) {
	ctx := context.Background()
	service := newTestService(memory.NewRepository(), &mockExtractor{})

	if _, err := service.Create(ctx, "T", "C"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got := lines(service); len(got) != 1 || got[0] != "1. T" {
		t.Fatalf("Expected [1. T], got %q", got)
	}

	if _, err := service.Create(ctx, "U", "D"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	got := lines(service)
	if len(got) != 2 || got[0] != "1. T" || got[1] != "2. U" {
		t.Fatalf("Expected [1. T 2. U], got %q", got)
	}
}

func TestNoteService_CreateFromImage_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := &mockRepository{}
	ex := &mockExtractor{text: "Hello"}
	service := newTestService(mockRepo, ex)

	res, err := service.CreateFromImage(ctx, "Scan", " /tmp/scan.png\n")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if res.Warning != nil {
		t.Errorf("Expected no warning, got: %v", res.Warning)
	}

	if res.Note.Content != "Hello" {
		t.Errorf("Expected content %q, got %q", "Hello", res.Note.Content)
	}

	if ex.lastPath != "/tmp/scan.png" {
		t.Errorf("Expected trimmed path, got %q", ex.lastPath)
	}

	if len(mockRepo.notes) != 1 || mockRepo.notes[0].Content != "Hello" {
		t.Errorf("Expected exactly one note with OCR content, got %+v", mockRepo.notes)
	}
}

func TestNoteService_CreateFromImage_OCRFailureAddsEmptyNote(t *testing.T) {
	mockRepo := &mockRepository{}
	ocrErr := fmt.Errorf("%w: tesseract exited", extractor.ErrOCRFailure)
	service := newTestService(mockRepo, &mockExtractor{text: "garbage", err: ocrErr})

	res, err := service.CreateFromImage(context.Background(), "Scan", "scan.png")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !errors.Is(res.Warning, extractor.ErrOCRFailure) {
		t.Errorf("Expected OCR warning, got: %v", res.Warning)
	}

	if len(mockRepo.notes) != 1 {
		t.Fatalf("Expected exactly one note, got %d", len(mockRepo.notes))
	}

	if mockRepo.notes[0].Content != "" {
		t.Errorf("Expected empty content, got %q", mockRepo.notes[0].Content)
	}
}

func TestNoteService_CreateFromImage_DecodeErrorAddsNothing(t *testing.T) {
	mockRepo := &mockRepository{}
	decodeErr := fmt.Errorf("%w: no such file", extractor.ErrImageDecode)
	service := newTestService(mockRepo, &mockExtractor{err: decodeErr})

	_, err := service.CreateFromImage(context.Background(), "Scan", "missing.png")
	if !errors.Is(err, extractor.ErrImageDecode) {
		t.Fatalf("Expected ErrImageDecode, got: %v", err)
	}

	if len(mockRepo.notes) != 0 {
		t.Errorf("Expected no notes, got %d", len(mockRepo.notes))
	}
}

func TestNoteService_CreateFromImage_CanceledAddsNothing(t *testing.T) {
	mockRepo := &mockRepository{}
	service := newTestService(mockRepo, &mockExtractor{err: context.Canceled})

	_, err := service.CreateFromImage(context.Background(), "Scan", "scan.png")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got: %v", err)
	}

	if len(mockRepo.notes) != 0 {
		t.Errorf("Expected no notes, got %d", len(mockRepo.notes))
	}
}

func TestNoteService_Remove_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := &mockRepository{notes: []model.Note{{Title: "A"}, {Title: "B"}}}
	service := newTestService(mockRepo, &mockExtractor{})

	note, err := service.Remove(ctx, 1)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if note.Title != "A" {
		t.Errorf("Expected position 1 to map to the first note, got %q", note.Title)
	}

	if got := lines(service); len(got) != 1 || got[0] != "1. B" {
		t.Errorf("Expected [1. B], got %q", got)
	}
}

func TestNoteService_Remove_ZeroDoesNotUnderflow(t *testing.T) {
	mockRepo := &mockRepository{notes: []model.Note{{Title: "A"}, {Title: "B"}}}
	service := newTestService(mockRepo, &mockExtractor{})

	for _, pos := range []int{0, -1} {
		_, err := service.Remove(context.Background(), pos)
		if !errors.Is(err, svc.ErrInvalidIndex) {
			t.Errorf("Expected ErrInvalidIndex for %d, got: %v", pos, err)
		}
	}

	if mockRepo.removeCalls != 0 {
		t.Errorf("Expected repository not to be called, got %d calls", mockRepo.removeCalls)
	}

	if service.Count(context.Background()) != 2 {
		t.Errorf("Expected notes to be unchanged, got %d", service.Count(context.Background()))
	}
}

func TestNoteService_Remove_OutOfRange(t *testing.T) {
	service := newTestService(memory.NewRepository(), &mockExtractor{})
	ctx := context.Background()
	if _, err := service.Create(ctx, "only", ""); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if _, err := service.Remove(ctx, 1); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	_, err := service.Remove(ctx, 1)
	if !errors.Is(err, svc.ErrInvalidIndex) {
		t.Fatalf("Expected ErrInvalidIndex, got: %v", err)
	}

	if got := lines(service); len(got) != 0 {
		t.Errorf("Expected empty store, got %q", got)
	}

	if service.Count(ctx) != 0 {
		t.Errorf("Expected count 0, got %d", service.Count(ctx))
	}
}

func TestNoteService_Get(t *testing.T) {
	mockRepo := &mockRepository{notes: []model.Note{{Title: "A", Content: "body"}}}
	service := newTestService(mockRepo, &mockExtractor{})

	note, err := service.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if note.Content != "body" {
		t.Errorf("Expected content %q, got %q", "body", note.Content)
	}

	for _, pos := range []int{0, 2} {
		if _, err := service.Get(context.Background(), pos); !errors.Is(err, svc.ErrInvalidIndex) {
			t.Errorf("Expected ErrInvalidIndex for %d, got: %v", pos, err)
		}
	}
}
