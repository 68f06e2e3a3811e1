package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Frontend FrontendConfig `yaml:"frontend"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// ServerConfig - конфигурация HTTP-сервера
type ServerConfig struct {
	Port string `yaml:"port"`
}

// DatabaseConfig - конфигурация базы данных
type DatabaseConfig struct {
	DSN string `yaml:"dsn"` // например "user:password@tcp(localhost:3306)/shift_planner?parseTime=true"
}

// JWTConfig - конфигурация JWT
type JWTConfig struct {
	Secret   string `yaml:"secret"`
	TTLHours int    `yaml:"ttl_hours"`
}

// FrontendConfig - адрес SPA, используется для CORS и ссылок в приглашениях
type FrontendConfig struct {
	URL string `yaml:"url"`
}

// DefaultsConfig - значения по умолчанию для новых сотрудников
type DefaultsConfig struct {
	VacationBalance   float64 `yaml:"vacation_balance"`
	InvitationTTLDays int     `yaml:"invitation_ttl_days"`
}

// Load читает config.yaml (путь можно переопределить через CONFIG_PATH),
// затем применяет переопределения из переменных окружения.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{Port: ":8080"},
		JWT:    JWTConfig{TTLHours: 8},
		Defaults: DefaultsConfig{
			VacationBalance:   25,
			InvitationTTLDays: 7,
		},
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("ошибка разбора файла конфигурации %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка чтения файла конфигурации %s: %w", path, err)
	}

	// Переменные окружения имеют приоритет над файлом
	if v := os.Getenv("APP_PORT"); v != "" {
		cfg.Server.Port = ":" + v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		cfg.Frontend.URL = v
	}

	if cfg.Database.DSN == "" {
		return nil, errors.New("необходимо указать DSN базы данных (database.dsn или DATABASE_DSN)")
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("необходимо указать секретный ключ JWT (jwt.secret или JWT_SECRET)")
	}
	if cfg.Server.Port == "" {
		return nil, errors.New("необходимо указать порт сервера")
	}
	if cfg.JWT.TTLHours <= 0 {
		cfg.JWT.TTLHours = 8
	}

	return cfg, nil
}
