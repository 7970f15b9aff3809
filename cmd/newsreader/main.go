package main

import (
	"context"
	"log"
	"os"

	"github.com/num311/news-reader/internal/app"
	"github.com/num311/news-reader/internal/config"
	"github.com/num311/news-reader/internal/filter"
	"github.com/num311/news-reader/internal/formatter"
	"github.com/num311/news-reader/internal/gemini"
	"github.com/num311/news-reader/internal/notify"
	"github.com/num311/news-reader/internal/sources"
	"github.com/num311/news-reader/internal/state"
	"github.com/num311/news-reader/internal/telegram"
)

func main() {
	ctx := context.Background()

	opts, err := config.ParseOptions(os.Args[1:])
	if err != nil {
		log.Fatalf("parse options: %v", err)
	}
	if opts == nil {
		// Запрошена справка
		return
	}

	cfg, err := config.LoadRoot(opts.Config)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if opts.Channel != "" {
		cfg.Channel = opts.Channel
		if err := cfg.Validate(); err != nil {
			log.Fatalf("invalid channel override: %v", err)
		}
	}

	// В dry-run учётные данные не нужны: отправки не будет
	env := &config.EnvConfig{}
	if !opts.DryRun {
		env, err = config.LoadEnvConfig(cfg)
		if err != nil {
			log.Fatalf("load env config: %v", err)
		}
	}

	// Инициализируем модули
	collector := sources.NewRSSCollector(nil)
	entryFilter := filter.New(cfg.Keywords, cfg.LookbackHours)
	stateStore := state.NewFileStore(opts.State)
	msgFormatter := formatter.New()

	var emailNotifier app.EmailNotifier
	if cfg.EmailEnabled() && !opts.DryRun {
		emailNotifier = notify.NewEmailSender(notify.EmailConfig{
			SMTPServer: cfg.Email.SMTPServer,
			SMTPPort:   cfg.Email.SMTPPort,
			SMTPUser:   env.EmailSender,
			SMTPPass:   env.EmailPassword,
			ToEmail:    cfg.Email.Recipient,
		})
	}

	var chatNotifier app.ChatNotifier
	if cfg.TelegramEnabled() && !opts.DryRun {
		chatNotifier = telegram.NewSender(telegram.NewClient(env.TelegramBotToken), env.TelegramChatID)
	}

	// Вводка для письма - необязательный этап: без API-ключа пропускаем
	var summarizer app.DigestSummarizer
	if emailNotifier != nil && env.GeminiAPIKey != "" {
		geminiClient, err := gemini.NewClient()
		if err != nil {
			log.Printf("Warning: digest intro disabled: %v", err)
		} else {
			summarizer = gemini.NewSummarizer(geminiClient, cfg.Gemini.Model)
		}
	}

	p := app.NewPipeline(app.PipelineDeps{
		Feeds:      cfg.Feeds,
		Fetcher:    collector,
		Filter:     entryFilter,
		StateStore: stateStore,
		Formatter:  msgFormatter,
		Email:      emailNotifier,
		Chat:       chatNotifier,
		Summarizer: summarizer,
		DryRun:     opts.DryRun,
	})

	items, err := p.Run(ctx)
	if err != nil {
		log.Fatalf("pipeline failed: %v", err)
	}

	log.Printf("Run completed: %d new items", len(items))
}
