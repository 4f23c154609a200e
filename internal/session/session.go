package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"note-ledger/internal/converter"
	"note-ledger/internal/extractor"
	svc "note-ledger/internal/service"
)

// maxLineLength ограничивает длину одной строки ввода
const maxLineLength = 1 << 20

// ErrLineTooLong возвращается для строки длиннее maxLineLength. Сессия после неё продолжается.
var ErrLineTooLong = errors.New("input line too long")

type lineResult struct {
	line string
	err  error
}

// Session интерактивный цикл меню поверх NoteService
type Session struct {
	notes  svc.NoteService
	in     io.Reader
	out    io.Writer
	logger *slog.Logger

	lines <-chan lineResult
}

// New создает сессию, читающую команды из in и пишущую ответы в out
func New(notes svc.NoteService, in io.Reader, out io.Writer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{notes: notes, in: in, out: out, logger: logger}
}

// Run выполняет цикл меню до выбора выхода, конца ввода или отмены ctx.
// Конец ввода считается штатным завершением и возвращает nil.
func (s *Session) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	s.lines = readLines(s.in, done)

	for {
		s.printMenu()

		input, err := s.readLine(ctx)
		if errors.Is(err, ErrLineTooLong) {
			s.println("Input line too long.")
			continue
		}
		if err != nil {
			return s.finish(err)
		}

		choice, err := ParseChoice(input)
		if err != nil {
			s.logger.DebugContext(ctx, "menu choice rejected", "error", err)
			s.println("Invalid choice.")
			continue
		}

		if choice == ChoiceExit {
			s.println("Exiting...")
			return nil
		}

		if err := s.dispatch(ctx, choice); err != nil {
			if errors.Is(err, ErrLineTooLong) {
				s.println("Input line too long.")
				continue
			}
			return s.finish(err)
		}
	}
}

// readLines читает строки в отдельной горутине, чтобы ожидание ввода можно было прервать через ctx
func readLines(in io.Reader, done <-chan struct{}) <-chan lineResult {
	lines := make(chan lineResult)
	go func() {
		defer close(lines)
		r := bufio.NewReader(in)
		for {
			line, err := readBoundedLine(r)
			if errors.Is(err, io.EOF) {
				return
			}
			select {
			case lines <- lineResult{line: line, err: err}:
			case <-done:
				return
			}
			if err != nil && !errors.Is(err, ErrLineTooLong) {
				return
			}
		}
	}()
	return lines
}

// readBoundedLine читает одну строку. Строка длиннее maxLineLength дочитывается
// до конца и отбрасывается, вызывающий получает ErrLineTooLong.
func readBoundedLine(r *bufio.Reader) (string, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			return "", err
		}
		if !tooLong {
			if len(buf)+len(chunk) > maxLineLength {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			break
		}
	}
	if tooLong {
		return "", ErrLineTooLong
	}
	return string(buf), nil
}

func (s *Session) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		return r.line, r.err
	}
}

func (s *Session) prompt(ctx context.Context, text string) (string, error) {
	s.println(text)
	return s.readLine(ctx)
}

func (s *Session) finish(err error) error {
	if errors.Is(err, io.EOF) {
		s.logger.Debug("input closed, ending session")
		return nil
	}
	return err
}

func (s *Session) dispatch(ctx context.Context, choice Choice) error {
	switch choice {
	case ChoiceAdd:
		return s.add(ctx)
	case ChoiceAddFromImage:
		return s.addFromImage(ctx)
	case ChoiceList:
		s.list(ctx)
		return nil
	case ChoiceShow:
		return s.show(ctx)
	case ChoiceRemove:
		return s.remove(ctx)
	}
	return nil
}

func (s *Session) add(ctx context.Context) error {
	title, err := s.prompt(ctx, "Enter note title:")
	if err != nil {
		return err
	}
	content, err := s.prompt(ctx, "Enter note content:")
	if err != nil {
		return err
	}

	if _, err := s.notes.Create(ctx, title, content); err != nil {
		s.printf("Could not add note: %v\n", err)
		return nil
	}
	s.println("Note added.")
	return nil
}

func (s *Session) addFromImage(ctx context.Context) error {
	title, err := s.prompt(ctx, "Enter note title:")
	if err != nil {
		return err
	}
	path, err := s.prompt(ctx, "Enter image file path:")
	if err != nil {
		return err
	}

	res, err := s.notes.CreateFromImage(ctx, title, path)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, extractor.ErrImageDecode):
		s.printf("Could not open image: %v\n", err)
		return nil
	default:
		s.printf("Could not add note: %v\n", err)
		return nil
	}

	if res.Warning != nil {
		s.printf("Text extraction failed, note added with empty content: %v\n", res.Warning)
		return nil
	}
	s.println("Note added.")
	return nil
}

func (s *Session) list(ctx context.Context) {
	if s.notes.Count(ctx) == 0 {
		s.println("No notes.")
		return
	}
	for pos, title := range s.notes.List(ctx) {
		s.println(converter.ListLine(pos, title))
	}
}

func (s *Session) show(ctx context.Context) error {
	input, err := s.prompt(ctx, "Enter note number:")
	if err != nil {
		return err
	}
	pos, err := ParsePosition(input)
	if err != nil {
		s.println("Invalid index.")
		return nil
	}

	note, err := s.notes.Get(ctx, pos)
	if err != nil {
		s.reportIndexError(err)
		return nil
	}
	s.println(converter.ModelToDisplay(note))
	return nil
}

func (s *Session) remove(ctx context.Context) error {
	input, err := s.prompt(ctx, "Enter the number of the note to remove:")
	if err != nil {
		return err
	}
	pos, err := ParsePosition(input)
	if err != nil {
		s.println("Invalid index.")
		return nil
	}

	note, err := s.notes.Remove(ctx, pos)
	if err != nil {
		s.reportIndexError(err)
		return nil
	}
	s.printf("Note %q removed.\n", note.Title)
	return nil
}

func (s *Session) reportIndexError(err error) {
	if errors.Is(err, svc.ErrInvalidIndex) {
		s.println("Invalid index.")
		return
	}
	s.printf("Error: %v\n", err)
}

func (s *Session) printMenu() {
	var b strings.Builder
	for c := ChoiceAdd; c <= ChoiceExit; c++ {
		fmt.Fprintf(&b, "%d. %s\n", int(c), c)
	}
	io.WriteString(s.out, b.String())
}

func (s *Session) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Session) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}
