package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultTimezone        = "Europe/Moscow"
	defaultReminderMinutes = 15
	defaultMaxAudioSizeMB  = 20
	defaultAIChatURL       = "https://chat.openai.com"
)

type Config struct {
	TelegramToken string
	DBDSN         string
	OpenAIAPIKey  string // Пустой ключ — распознавание голоса выключено
	Environment   string

	Timezone        string
	ReminderMinutes int
	MaxAudioSizeMB  int
	AIChatURL       string
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	}

	cfg := &Config{
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		DBDSN:           os.Getenv("DB_DSN"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		Environment:     os.Getenv("ENV"),
		Timezone:        os.Getenv("TIMEZONE"),
		ReminderMinutes: defaultReminderMinutes,
		MaxAudioSizeMB:  defaultMaxAudioSizeMB,
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = defaultTimezone
	}
	cfg.AIChatURL = defaultAIChatURL
	if v := os.Getenv("AI_CHAT_URL"); v != "" {
		cfg.AIChatURL = v
	}

	if v := os.Getenv("REMINDER_MINUTES_BEFORE"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 {
			return nil, fmt.Errorf("invalid REMINDER_MINUTES_BEFORE: %q", v)
		}
		cfg.ReminderMinutes = minutes
	}

	if v := os.Getenv("MAX_AUDIO_SIZE_MB"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("invalid MAX_AUDIO_SIZE_MB: %q", v)
		}
		cfg.MaxAudioSizeMB = size
	}

	// Проверяем обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	// Таймзона фиксируется на старте, перезагрузки на лету нет
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}

	if cfg.OpenAIAPIKey == "" {
		log.Println("⚠️  OPENAI_API_KEY not set, voice recognition will not work")
	}

	return cfg, nil
}

// Location возвращает загруженную таймзону
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		// Валидируется в Load, сюда не попадаем
		return time.UTC
	}
	return loc
}
