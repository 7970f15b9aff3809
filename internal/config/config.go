package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Каналы уведомлений.
const (
	ChannelEmail    = "email"
	ChannelTelegram = "telegram"
	ChannelBoth     = "both"
)

const defaultLookbackHours = 2

type (
	// Root объединяет все конфигурационные блоки одного запуска.
	Root struct {
		// Feeds - отслеживаемые ленты: ключ ленты -> URL
		Feeds map[string]string `yaml:"feeds"`
		// Keywords проверяются в заданном порядке; побеждает первое совпавшее
		Keywords []string `yaml:"keywords"`
		// LookbackHours - окно свежести в часах
		LookbackHours int    `yaml:"lookback_hours"`
		Channel       string `yaml:"channel"`
		Email         Email  `yaml:"email"`
		Gemini        Gemini `yaml:"gemini"`
	}

	// Email описывает адресата и SMTP-сервер. Учётные данные приходят
	// из переменных окружения, не из файла.
	Email struct {
		Recipient  string `yaml:"recipient"`
		SMTPServer string `yaml:"smtp_server"`
		SMTPPort   int    `yaml:"smtp_port"`
	}

	// Gemini содержит настройки необязательной вводки для письма.
	Gemini struct {
		Model string `yaml:"model"`
	}
)

// LoadRoot читает основной файл конфигурации и проверяет его.
func LoadRoot(path string) (Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Root{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Root
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Root{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Root{}, err
	}
	return cfg, nil
}

func (c *Root) applyDefaults() {
	if c.LookbackHours <= 0 {
		c.LookbackHours = defaultLookbackHours
	}
	if c.Channel == "" {
		c.Channel = ChannelEmail
	}
	if c.Email.SMTPServer == "" {
		c.Email.SMTPServer = "smtp.gmail.com"
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
}

// Validate проверяет конфигурацию до запуска пайплайна. Ошибки этого
// уровня фатальны: это единственный класс ошибок, завершающий процесс
// с ненулевым кодом.
func (c *Root) Validate() error {
	if len(c.Feeds) == 0 {
		return fmt.Errorf("config: at least one feed is required")
	}
	if len(c.Keywords) == 0 {
		return fmt.Errorf("config: at least one keyword is required")
	}
	switch c.Channel {
	case ChannelEmail, ChannelTelegram, ChannelBoth:
	default:
		return fmt.Errorf("config: unknown channel %q (expected email, telegram or both)", c.Channel)
	}
	if c.EmailEnabled() && c.Email.Recipient == "" {
		return fmt.Errorf("config: email.recipient is required for channel %q", c.Channel)
	}
	return nil
}

// EmailEnabled сообщает, задействован ли почтовый канал.
func (c *Root) EmailEnabled() bool {
	return c.Channel == ChannelEmail || c.Channel == ChannelBoth
}

// TelegramEnabled сообщает, задействован ли чат-канал.
func (c *Root) TelegramEnabled() bool {
	return c.Channel == ChannelTelegram || c.Channel == ChannelBoth
}
