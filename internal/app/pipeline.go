package app

import (
	"context"
	"errors"
	"html"
	"log"
	"sync"
	"time"

	"github.com/num311/news-reader/internal/news"
)

// ErrNotConfigured возвращается, когда пайплайн запущен без обязательных зависимостей.
var ErrNotConfigured = errors.New("pipeline dependencies not configured")

// Clock определяет источник времени (удобно подменять в тестах).
type Clock func() time.Time

// Fetcher загружает одну ленту и возвращает нормализованные записи
// в исходном порядке ленты.
type Fetcher interface {
	Fetch(ctx context.Context, feedKey, feedURL string) ([]news.FeedEntry, error)
}

// EntryFilter отвечает за отбор записей по свежести и ключевым словам.
type EntryFilter interface {
	IsRecent(entry news.FeedEntry, now time.Time) bool
	MatchKeyword(entry news.FeedEntry) (string, bool)
}

// StateStore хранит историю уведомлений между запусками.
type StateStore interface {
	Load(ctx context.Context) news.DedupState
	Save(ctx context.Context, st news.DedupState) error
}

// Formatter превращает отобранные записи в payload каналов.
type Formatter interface {
	EmailSubject() string
	BuildEmailBody(items []news.MatchedItem) string
	BuildChatMessages(items []news.MatchedItem) []string
}

// EmailNotifier доставляет письмо.
type EmailNotifier interface {
	Send(ctx context.Context, subject, htmlBody string) error
}

// ChatNotifier доставляет сообщения в чат.
type ChatNotifier interface {
	Send(ctx context.Context, messages []string) error
}

// DigestSummarizer готовит необязательную вводку для письма.
type DigestSummarizer interface {
	Summarize(ctx context.Context, items []news.MatchedItem) (string, error)
}

// PipelineDeps перечисляет зависимости пайплайна.
// Email, Chat и Summarizer могут быть nil: соответствующий канал
// просто отключён.
type PipelineDeps struct {
	Feeds      map[string]string
	Fetcher    Fetcher
	Filter     EntryFilter
	StateStore StateStore
	Formatter  Formatter
	Email      EmailNotifier
	Chat       ChatNotifier
	Summarizer DigestSummarizer
	Clock      Clock
	DryRun     bool
}

// Pipeline инкапсулирует один запуск: fan-out по лентам, слияние,
// дедупликация и рассылка.
type Pipeline struct {
	feeds      map[string]string
	fetcher    Fetcher
	filter     EntryFilter
	stateStore StateStore
	formatter  Formatter
	email      EmailNotifier
	chat       ChatNotifier
	summarizer DigestSummarizer
	clock      Clock
	dryRun     bool
}

// NewPipeline создаёт новый экземпляр пайплайна.
func NewPipeline(deps PipelineDeps) *Pipeline {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Pipeline{
		feeds:      deps.Feeds,
		fetcher:    deps.Fetcher,
		filter:     deps.Filter,
		stateStore: deps.StateStore,
		formatter:  deps.Formatter,
		email:      deps.Email,
		chat:       deps.Chat,
		summarizer: deps.Summarizer,
		clock:      clock,
		dryRun:     deps.DryRun,
	}
}

// feedResult - результат обработки одной ленты.
type feedResult struct {
	feedKey string
	items   []news.MatchedItem
	err     error
}

// Run исполняет полный цикл: загрузка состояния, конкурентная обработка
// лент, слияние с дедупликацией по заголовку, фиксация состояния и
// рассылка. Возвращает итоговый список отобранных записей.
//
// Ошибки отдельных лент и каналов доставки не прерывают запуск; ошибкой
// Run завершается только при отсутствии обязательных зависимостей.
func (p *Pipeline) Run(ctx context.Context) ([]news.MatchedItem, error) {
	if err := p.validateDeps(); err != nil {
		return nil, err
	}

	st := p.stateStore.Load(ctx)

	// Порог свежести фиксируется один раз на запуск, чтобы все записи
	// сравнивались с одним и тем же моментом времени.
	now := p.clock().UTC()

	log.Printf("Step 1: Processing %d feeds...", len(p.feeds))
	merged := p.collect(ctx, now, &st)
	log.Printf("After merge and dedup: %d items", len(merged))

	if len(merged) == 0 {
		log.Println("No new matching entries found")
		return merged, nil
	}

	if p.dryRun {
		for _, item := range merged {
			log.Printf("[dry-run] %s: %q (keyword %q)", item.Entry.SourceFeed, item.Entry.Title, item.Keyword)
		}
		return merged, nil
	}

	// Состояние фиксируется до доставки: при сбое уведомления запись не
	// будет отправлена повторно на следующем запуске. Лучше потерять
	// один алерт, чем заспамить канал дублями.
	log.Println("Step 2: Committing dedup state...")
	for _, item := range merged {
		st.MarkNotified(item.Entry.SourceFeed, item.Entry.ID)
	}
	st.LastRun = now
	if err := p.stateStore.Save(ctx, st); err != nil {
		log.Printf("Error: failed to save dedup state: %v (items may be re-notified next run)", err)
	}

	log.Println("Step 3: Dispatching notifications...")
	p.dispatch(ctx, merged)

	return merged, nil
}

// collect запускает обработку всех лент конкурентно (по горутине на
// ленту) и сливает результаты. Ошибка одной ленты изолируется и не
// отменяет обработку остальных. Внутри одной ленты порядок записей
// сохраняется; порядок между лентами определяется порядком завершения.
func (p *Pipeline) collect(ctx context.Context, now time.Time, st *news.DedupState) []news.MatchedItem {
	results := make(chan feedResult, len(p.feeds))
	var wg sync.WaitGroup

	for feedKey, feedURL := range p.feeds {
		wg.Add(1)
		go func(feedKey, feedURL string) {
			defer wg.Done()
			items, err := p.processFeed(ctx, feedKey, feedURL, now, st)
			results <- feedResult{feedKey: feedKey, items: items, err: err}
		}(feedKey, feedURL)
	}

	wg.Wait()
	close(results)

	var merged []news.MatchedItem
	seenTitles := make(map[string]struct{})

	for res := range results {
		if res.err != nil {
			log.Printf("Error: feed %s failed: %v", res.feedKey, res.err)
			continue
		}
		for _, item := range res.items {
			// Дедупликация внутри запуска по заголовку: ленты иногда
			// переопубликовывают одну запись под новым id
			if _, ok := seenTitles[item.Entry.Title]; ok {
				continue
			}
			seenTitles[item.Entry.Title] = struct{}{}
			merged = append(merged, item)
		}
	}

	return merged
}

// processFeed обрабатывает одну ленту: загрузка, фильтр свежести,
// ключевые слова, проверка истории уведомлений. Состояние здесь только
// читается; запись отложена до завершения всех лент.
func (p *Pipeline) processFeed(ctx context.Context, feedKey, feedURL string, now time.Time, st *news.DedupState) ([]news.MatchedItem, error) {
	entries, err := p.fetcher.Fetch(ctx, feedKey, feedURL)
	if err != nil {
		return nil, err
	}

	var items []news.MatchedItem
	for _, entry := range entries {
		if !p.filter.IsRecent(entry, now) {
			continue
		}
		keyword, ok := p.filter.MatchKeyword(entry)
		if !ok {
			continue
		}
		if st.WasNotified(feedKey, entry.ID) {
			// Уже отправляли: это штатная дедупликация, не ошибка
			continue
		}
		items = append(items, news.MatchedItem{Entry: entry, Keyword: keyword})
	}

	return items, nil
}

// dispatch рассылает уведомления по включённым каналам. Ошибка одного
// канала логируется и не мешает другому.
func (p *Pipeline) dispatch(ctx context.Context, items []news.MatchedItem) {
	if p.email != nil {
		body := p.formatter.BuildEmailBody(items)
		if p.summarizer != nil {
			intro, err := p.summarizer.Summarize(ctx, items)
			if err != nil {
				log.Printf("Warning: digest intro skipped: %v", err)
			} else if intro != "" {
				body = "<p>" + html.EscapeString(intro) + "</p><hr>" + body
			}
		}
		if err := p.email.Send(ctx, p.formatter.EmailSubject(), body); err != nil {
			log.Printf("Error: email delivery failed: %v", err)
		}
	}

	if p.chat != nil {
		messages := p.formatter.BuildChatMessages(items)
		if err := p.chat.Send(ctx, messages); err != nil {
			log.Printf("Error: chat delivery failed: %v", err)
		}
	}
}

func (p *Pipeline) validateDeps() error {
	switch {
	case len(p.feeds) == 0,
		p.fetcher == nil,
		p.filter == nil,
		p.stateStore == nil,
		p.formatter == nil,
		p.clock == nil:
		return ErrNotConfigured
	}
	// Без dry-run нужен хотя бы один канал доставки
	if !p.dryRun && p.email == nil && p.chat == nil {
		return ErrNotConfigured
	}
	return nil
}
