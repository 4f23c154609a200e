package model

// Note представляет заметку (доменная модель).
// Заметка не имеет собственного идентификатора: её адресует позиция в хранилище.
type Note struct {
	Title   string // Заголовок заметки
	Content string // Содержание заметки (может быть результатом OCR или пустым)
}
