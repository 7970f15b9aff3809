package config

import (
	"fmt"
	"os"
)

// EnvConfig содержит учётные данные из переменных окружения.
type EnvConfig struct {
	TelegramBotToken string
	TelegramChatID   string
	EmailSender      string
	EmailPassword    string
	GeminiAPIKey     string // необязателен: без ключа письмо уходит без вводки
}

// LoadEnvConfig читает переменные окружения и проверяет, что для
// выбранных каналов заданы обязательные учётные данные.
func LoadEnvConfig(cfg Root) (*EnvConfig, error) {
	env := &EnvConfig{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
		EmailSender:      os.Getenv("EMAIL_SENDER"),
		EmailPassword:    os.Getenv("EMAIL_PASSWORD"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
	}

	if cfg.TelegramEnabled() {
		if env.TelegramBotToken == "" {
			return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is required for channel %q", cfg.Channel)
		}
		if env.TelegramChatID == "" {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID environment variable is required for channel %q", cfg.Channel)
		}
	}

	if cfg.EmailEnabled() {
		if env.EmailSender == "" {
			return nil, fmt.Errorf("EMAIL_SENDER environment variable is required for channel %q", cfg.Channel)
		}
		if env.EmailPassword == "" {
			return nil, fmt.Errorf("EMAIL_PASSWORD environment variable is required for channel %q", cfg.Channel)
		}
	}

	return env, nil
}
