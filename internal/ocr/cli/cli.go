package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"

	"note-ledger/internal/ocr"
)

// DefaultBinary имя исполняемого файла tesseract
const DefaultBinary = "tesseract"

// ErrNoPath возвращается, когда во входных данных нет пути к файлу
var ErrNoPath = errors.New("input has no image path")

func init() {
	ocr.Register(ocr.EngineCLI, func(opts ocr.Options) ocr.Engine { return NewEngine(opts.Binary) })
}

var _ ocr.Engine = (*Engine)(nil)

// Engine запускает внешний процесс tesseract и читает текст из stdout
type Engine struct {
	binary string
}

// NewEngine создает движок, вызывающий указанный исполняемый файл.
// Пустое имя означает DefaultBinary.
func NewEngine(binary string) *Engine {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Engine{binary: binary}
}

func (e *Engine) Name() string { return ocr.EngineCLI }

// Recognize запускает `<binary> <path> stdout -l <lang>`.
// Процесс блокирует вызов до завершения или отмены контекста.
func (e *Engine) Recognize(ctx context.Context, in ocr.Input) (ocr.Result, error) {
	if in.Path == "" {
		return ocr.Result{}, ErrNoPath
	}

	lang := ocr.FirstLanguage(in.Languages)
	cmd := exec.CommandContext(ctx, e.binary, in.Path, "stdout", "-l", lang)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ocr.Result{}, ctxErr
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return ocr.Result{}, fmt.Errorf("%s: %w: %s", e.binary, err, msg)
		}
		return ocr.Result{}, fmt.Errorf("%s: %w", e.binary, err)
	}

	if !utf8.Valid(stdout.Bytes()) {
		return ocr.Result{}, ocr.ErrInvalidText
	}

	return ocr.Result{Text: stdout.String(), Language: lang}, nil
}
