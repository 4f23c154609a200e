//go:build gosseract

package tesseract

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/otiai10/gosseract/v2"

	"note-ledger/internal/ocr"
)

func init() {
	ocr.Register(ocr.EngineTesseract, func(ocr.Options) ocr.Engine { return NewEngine() })
}

var _ ocr.Engine = (*Engine)(nil)

// Engine распознает текст через libtesseract (клиент gosseract).
// Клиент создается на каждый вызов и закрывается после него.
// Пакет собирается только с тегом gosseract, так как требует cgo и заголовки tesseract.
type Engine struct {
	clientFactory func() *gosseract.Client
}

// NewEngine создает движок на основе gosseract
func NewEngine() *Engine {
	return &Engine{clientFactory: gosseract.NewClient}
}

func (e *Engine) Name() string { return ocr.EngineTesseract }

// Recognize выполняет распознавание одного изображения
func (e *Engine) Recognize(ctx context.Context, in ocr.Input) (ocr.Result, error) {
	if err := ctx.Err(); err != nil {
		return ocr.Result{}, err
	}

	c := e.clientFactory()
	defer c.Close()

	if len(in.Image) > 0 {
		if err := c.SetImageFromBytes(in.Image); err != nil {
			return ocr.Result{}, fmt.Errorf("set image: %w", err)
		}
	} else {
		if err := c.SetImage(in.Path); err != nil {
			return ocr.Result{}, fmt.Errorf("set image %s: %w", in.Path, err)
		}
	}

	lang := ocr.FirstLanguage(in.Languages)
	if err := c.SetLanguage(lang); err != nil {
		return ocr.Result{}, fmt.Errorf("set language %s: %w", lang, err)
	}

	text, err := c.Text()
	if err != nil {
		return ocr.Result{}, fmt.Errorf("recognize text: %w", err)
	}
	if !utf8.ValidString(text) {
		return ocr.Result{}, ocr.ErrInvalidText
	}

	return ocr.Result{Text: text, Language: lang}, nil
}
