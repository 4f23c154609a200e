package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"note-ledger/internal/ocr"
)

var (
	// ErrImageDecode возвращается, когда файл отсутствует или не является изображением.
	// Заметка в этом случае не создается.
	ErrImageDecode = errors.New("image open error")

	// ErrOCRFailure возвращается, когда распознавание не удалось.
	// Заметка создается с пустым содержимым.
	ErrOCRFailure = errors.New("ocr failure")
)

const tempPrefix = "ledger-ocr-"

// DefaultMaxPixels ограничение на площадь изображения (ширина × высота) до декодирования
const DefaultMaxPixels = 1 << 26

// Extractor превращает путь к изображению в распознанный текст
type Extractor struct {
	engine    ocr.Engine
	languages []string
	tempDir   string
	timeout   time.Duration
	maxPixels int
	logger    *slog.Logger
}

// Option настраивает Extractor
type Option func(*Extractor)

// WithLanguages задает подсказки языка для движка
func WithLanguages(langs ...string) Option {
	return func(e *Extractor) { e.languages = append([]string(nil), langs...) }
}

// WithTempDir задает каталог для временных файлов (по умолчанию os.TempDir())
func WithTempDir(dir string) Option {
	return func(e *Extractor) { e.tempDir = dir }
}

// WithTimeout ограничивает время одного распознавания; ноль означает без ограничения
func WithTimeout(d time.Duration) Option {
	return func(e *Extractor) { e.timeout = d }
}

// WithMaxPixels ограничивает площадь декодируемого изображения
func WithMaxPixels(n int) Option {
	return func(e *Extractor) { e.maxPixels = n }
}

// WithLogger задает логгер для диагностики
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) { e.logger = logger }
}

// New создает Extractor поверх указанного движка
func New(engine ocr.Engine, opts ...Option) *Extractor {
	e := &Extractor{
		engine:    engine,
		languages: []string{ocr.DefaultLanguage},
		maxPixels: DefaultMaxPixels,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract декодирует изображение, сохраняет его во временный файл и распознает текст.
//
// Ошибка декодирования оборачивает ErrImageDecode. Ошибка распознавания
// оборачивает ErrOCRFailure, текст при этом пустой. Отмена ctx возвращается как есть.
// Временный файл удаляется при любом исходе.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	img, format, err := decode(path, e.maxPixels)
	if err != nil {
		return "", err
	}
	e.logger.DebugContext(ctx, "image decoded", "path", path, "format", format, "bounds", img.Bounds().String())

	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", e.soft(ctx, fmt.Errorf("encode png: %w", err))
	}

	tmpPath, cleanup, err := e.stage(buf.Bytes())
	if err != nil {
		return "", e.soft(ctx, err)
	}
	defer cleanup()

	ocrCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ocrCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	res, err := e.engine.Recognize(ocrCtx, ocr.Input{
		Path:      tmpPath,
		Image:     buf.Bytes(),
		Format:    ocr.ImageFormatPNG,
		Languages: e.languages,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", e.soft(ctx, fmt.Errorf("%s: %w", e.engine.Name(), err))
	}
	if !utf8.ValidString(res.Text) {
		return "", e.soft(ctx, ocr.ErrInvalidText)
	}

	return strings.TrimSpace(res.Text), nil
}

func (e *Extractor) soft(ctx context.Context, err error) error {
	e.logger.WarnContext(ctx, "text extraction failed", "error", err)
	return fmt.Errorf("%w: %w", ErrOCRFailure, err)
}

// stage пишет изображение в уникальный файл и возвращает функцию его удаления
func (e *Extractor) stage(data []byte) (string, func(), error) {
	dir := e.tempDir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, tempPrefix+uuid.NewString()+".png")

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", nil, fmt.Errorf("create temp image: %w", err)
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			e.logger.Warn("remove temp image", "path", path, "error", err)
		}
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("write temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close temp image: %w", err)
	}

	return path, cleanup, nil
}

// decode проверяет размеры по заголовку до полного декодирования,
// чтобы заголовок с огромными размерами не приводил к гигантской аллокации
func decode(path string, maxPixels int) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrImageDecode, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %w", ErrImageDecode, path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return nil, "", fmt.Errorf("%w: %s: dimensions %dx%d exceed limit of %d pixels",
			ErrImageDecode, path, cfg.Width, cfg.Height, maxPixels)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, "", fmt.Errorf("%w: %s: %w", ErrImageDecode, path, err)
	}
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s: %w", ErrImageDecode, path, err)
	}
	return img, format, nil
}
