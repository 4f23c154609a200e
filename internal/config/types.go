package config

// ConfigLogger настройки логирования
type ConfigLogger struct {
	Level string `mapstructure:"level"`
}

// ConfigOCR настройки распознавания текста
type ConfigOCR struct {
	Engine         string `mapstructure:"engine"`          // "cli" или "tesseract"
	Language       string `mapstructure:"language"`        // Подсказка языка, например "eng"
	Binary         string `mapstructure:"binary"`          // Исполняемый файл для движка "cli"
	TempDir        string `mapstructure:"temp_dir"`        // Каталог временных файлов, пусто = os.TempDir()
	TimeoutSeconds int    `mapstructure:"timeout_seconds"` // 0 = без ограничения
}

// Config основная структура конфигурации
type Config struct {
	Logger *ConfigLogger `mapstructure:"logger"`
	OCR    *ConfigOCR    `mapstructure:"ocr"`
}

// Defaults значения по умолчанию, применяемые до чтения файла
var Defaults = map[string]any{
	"logger.level":        "info",
	"ocr.engine":          "cli",
	"ocr.language":        "eng",
	"ocr.binary":          "tesseract",
	"ocr.temp_dir":        "",
	"ocr.timeout_seconds": 0,
}
