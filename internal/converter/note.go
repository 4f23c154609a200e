package converter

import (
	"fmt"

	"note-ledger/internal/model"
)

// ListLine конвертирует позицию и заголовок в строку списка "1. Заголовок"
func ListLine(position int, title string) string {
	return fmt.Sprintf("%d. %s", position, title)
}

// ModelToDisplay конвертирует заметку в текст для вывода в консоль
func ModelToDisplay(note model.Note) string {
	return fmt.Sprintf("--- %s ---\n%s", note.Title, note.Content)
}
