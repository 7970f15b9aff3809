package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "newsreader.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const validConfig = `
feeds:
  alpha: "https://alpha.example/rss"
keywords:
  - "breach"
channel: telegram
`

func TestLoadRoot(t *testing.T) {
	t.Run("valid config with defaults applied", func(t *testing.T) {
		cfg, err := LoadRoot(writeConfig(t, validConfig))
		if err != nil {
			t.Fatalf("LoadRoot() error = %v", err)
		}
		if cfg.Feeds["alpha"] != "https://alpha.example/rss" {
			t.Errorf("feeds = %v", cfg.Feeds)
		}
		if cfg.LookbackHours != defaultLookbackHours {
			t.Errorf("LookbackHours = %d, want default %d", cfg.LookbackHours, defaultLookbackHours)
		}
		if cfg.Email.SMTPPort != 587 {
			t.Errorf("SMTPPort = %d, want 587", cfg.Email.SMTPPort)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadRoot(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Fatal("LoadRoot() should fail on missing file")
		}
	})

	t.Run("no feeds", func(t *testing.T) {
		if _, err := LoadRoot(writeConfig(t, "keywords: [breach]\nchannel: telegram\n")); err == nil {
			t.Fatal("LoadRoot() should fail without feeds")
		}
	})

	t.Run("no keywords", func(t *testing.T) {
		if _, err := LoadRoot(writeConfig(t, "feeds: {a: 'https://a'}\nchannel: telegram\n")); err == nil {
			t.Fatal("LoadRoot() should fail without keywords")
		}
	})

	t.Run("unknown channel", func(t *testing.T) {
		if _, err := LoadRoot(writeConfig(t, "feeds: {a: 'https://a'}\nkeywords: [x]\nchannel: pigeon\n")); err == nil {
			t.Fatal("LoadRoot() should fail on unknown channel")
		}
	})

	t.Run("email channel requires recipient", func(t *testing.T) {
		if _, err := LoadRoot(writeConfig(t, "feeds: {a: 'https://a'}\nkeywords: [x]\nchannel: email\n")); err == nil {
			t.Fatal("LoadRoot() should fail without email recipient")
		}
	})
}

func TestLoadEnvConfig(t *testing.T) {
	clearEnv := func(t *testing.T) {
		t.Helper()
		for _, key := range []string{"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "EMAIL_SENDER", "EMAIL_PASSWORD", "GEMINI_API_KEY"} {
			t.Setenv(key, "")
		}
	}

	telegramCfg := Root{Channel: ChannelTelegram}
	emailCfg := Root{Channel: ChannelEmail}

	t.Run("telegram channel requires token and chat id", func(t *testing.T) {
		clearEnv(t)
		if _, err := LoadEnvConfig(telegramCfg); err == nil {
			t.Fatal("LoadEnvConfig() should fail without telegram credentials")
		}

		t.Setenv("TELEGRAM_BOT_TOKEN", "token")
		if _, err := LoadEnvConfig(telegramCfg); err == nil {
			t.Fatal("LoadEnvConfig() should fail without chat id")
		}

		t.Setenv("TELEGRAM_CHAT_ID", "42")
		env, err := LoadEnvConfig(telegramCfg)
		if err != nil {
			t.Fatalf("LoadEnvConfig() error = %v", err)
		}
		if env.TelegramBotToken != "token" || env.TelegramChatID != "42" {
			t.Errorf("env = %+v", env)
		}
	})

	t.Run("email channel requires sender credentials", func(t *testing.T) {
		clearEnv(t)
		if _, err := LoadEnvConfig(emailCfg); err == nil {
			t.Fatal("LoadEnvConfig() should fail without email credentials")
		}

		t.Setenv("EMAIL_SENDER", "bot@example.com")
		t.Setenv("EMAIL_PASSWORD", "secret")
		if _, err := LoadEnvConfig(emailCfg); err != nil {
			t.Fatalf("LoadEnvConfig() error = %v", err)
		}
	})

	t.Run("email credentials not required for telegram channel", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TELEGRAM_BOT_TOKEN", "token")
		t.Setenv("TELEGRAM_CHAT_ID", "42")
		if _, err := LoadEnvConfig(telegramCfg); err != nil {
			t.Fatalf("LoadEnvConfig() error = %v", err)
		}
	})
}
