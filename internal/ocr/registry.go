package ocr

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Имена встроенных движков
const (
	EngineCLI       = "cli"
	EngineTesseract = "tesseract"
)

// ErrUnknownEngine возвращается, когда движок с таким именем не зарегистрирован
var ErrUnknownEngine = errors.New("unknown ocr engine")

// Options параметры создания движка
type Options struct {
	Binary string // Исполняемый файл для движков на основе внешнего процесса
}

// Factory создает движок по параметрам
type Factory func(opts Options) Engine

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register регистрирует фабрику движка. Пакеты движков вызывают её из init.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Open создает зарегистрированный движок по имени
func Open(name string, opts Options) (Engine, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownEngine, name, Engines())
	}
	return factory(opts), nil
}

// Engines возвращает отсортированные имена зарегистрированных движков
func Engines() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
