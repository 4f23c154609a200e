package ocr

import (
	"context"
	"errors"
)

// DefaultLanguage язык распознавания по умолчанию
const DefaultLanguage = "eng"

// ErrInvalidText возвращается, когда движок вернул данные, не являющиеся текстом UTF-8
var ErrInvalidText = errors.New("ocr output is not valid utf-8 text")

// ImageFormat тип содержимого изображения
type ImageFormat string

// ImageFormatPNG формат, в котором изображения передаются движкам
const ImageFormatPNG ImageFormat = "image/png"

// Input описывает одно изображение, переданное на распознавание.
// Движки могут использовать либо байты (Image), либо файл на диске (Path).
type Input struct {
	Path      string      // Путь к временному файлу с изображением
	Image     []byte      // Закодированное изображение
	Format    ImageFormat // Формат Image
	Languages []string    // Подсказки языка ("eng", "tur", ...)
}

// Result результат распознавания одного изображения
type Result struct {
	Text     string // Распознанный текст без обработки
	Language string // Язык, с которым выполнялось распознавание
}

// Engine движок распознавания: одно изображение на входе, один результат на выходе
type Engine interface {
	Name() string
	Recognize(ctx context.Context, input Input) (Result, error)
}

// FirstLanguage возвращает первый язык из списка или DefaultLanguage
func FirstLanguage(langs []string) string {
	for _, l := range langs {
		if l != "" {
			return l
		}
	}
	return DefaultLanguage
}
