package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	svc "note-ledger/internal/service"
)

// ErrInvalidMenuChoice возвращается для нераспознанного пункта меню
var ErrInvalidMenuChoice = errors.New("invalid menu choice")

// Choice пункт меню
type Choice int

const (
	ChoiceAdd Choice = iota + 1
	ChoiceAddFromImage
	ChoiceList
	ChoiceShow
	ChoiceRemove
	ChoiceExit
)

var choiceLabels = map[Choice]string{
	ChoiceAdd:          "Add note",
	ChoiceAddFromImage: "Add note from image",
	ChoiceList:         "List notes",
	ChoiceShow:         "Show note",
	ChoiceRemove:       "Remove note",
	ChoiceExit:         "Exit",
}

func (c Choice) String() string {
	if label, ok := choiceLabels[c]; ok {
		return label
	}
	return fmt.Sprintf("Choice(%d)", int(c))
}

// ParseChoice разбирает ввод пользователя в пункт меню
func ParseChoice(input string) (Choice, error) {
	s := strings.TrimSpace(input)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidMenuChoice)
	}
	c := Choice(n)
	if c < ChoiceAdd || c > ChoiceExit {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidMenuChoice)
	}
	return c, nil
}

// ParsePosition разбирает позицию заметки (с единицы).
// Ноль, отрицательные и нечисловые значения отклоняются.
func ParsePosition(input string) (int, error) {
	s := strings.TrimSpace(input)
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%q: %w", s, svc.ErrInvalidIndex)
	}
	return n, nil
}
