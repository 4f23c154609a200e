package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvWithDefaults расширяет переменные окружения с поддержкой дефолтных значений
// Формат: ${VAR:-default}
func expandEnvWithDefaults(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		// Извлекаем имя переменной и значение по умолчанию
		matches := envPattern.FindStringSubmatch(match)
		if len(matches) < 2 {
			return match
		}

		varName := matches[1]
		defaultValue := ""
		if len(matches) > 2 {
			defaultValue = matches[2]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}

// InitConfig читает конфигурационный файл и возвращает экземпляр конфигурации.
// Пустое имя файла означает конфигурацию только из значений по умолчанию.
func InitConfig[C any](configFile string, defaults map[string]any) (*C, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if configFile != "" {
		ext := strings.TrimLeft(filepath.Ext(configFile), ".")
		v.SetConfigFile(configFile)
		v.SetConfigType(ext)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("v.ReadInConfig: %w", err)
		}
	}

	// Заменяем переменные окружения формата ${VAR:-default} на их значения
	for _, k := range v.AllKeys() {
		value := v.GetString(k)
		if value == "" {
			continue
		}
		expanded := expandEnvWithDefaults(value)

		// Если значение выглядит как число или boolean, сохраняем его с правильным типом
		if expanded == "true" || expanded == "false" {
			boolValue, _ := strconv.ParseBool(expanded)
			v.Set(k, boolValue)
		} else if intValue, err := strconv.Atoi(expanded); err == nil {
			v.Set(k, intValue)
		} else {
			v.Set(k, expanded)
		}
	}

	cfg := new(C)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}

	return cfg, nil
}

// Load читает конфигурацию приложения
func Load(configFile string) (*Config, error) {
	cfg, err := InitConfig[Config](configFile, Defaults)
	if err != nil {
		return nil, err
	}
	if cfg.Logger == nil {
		cfg.Logger = &ConfigLogger{}
	}
	if cfg.OCR == nil {
		cfg.OCR = &ConfigOCR{}
	}
	return cfg, nil
}

// LogLevel переводит строковый уровень логирования в slog.Level
func (c *ConfigLogger) LogLevel() slog.Level {
	if c == nil {
		return slog.LevelInfo
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.Level))); err != nil {
		return slog.LevelInfo
	}
	return level
}
