package sources

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/num311/news-reader/internal/news"
)

// RSSCollector загружает ленту по URL и нормализует её записи.
type RSSCollector struct {
	client *http.Client
	parser *gofeed.Parser
}

// NewRSSCollector создаёт новый экземпляр. client может быть nil,
// тогда используется клиент с таймаутом по умолчанию.
func NewRSSCollector(client *http.Client) *RSSCollector {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &RSSCollector{
		client: client,
		parser: gofeed.NewParser(),
	}
}

// Fetch реализует app.Fetcher: загружает ленту feedURL и возвращает
// нормализованные записи в исходном порядке ленты. Записи без
// пригодного идентификатора пропускаются с записью в лог.
func (c *RSSCollector) Fetch(ctx context.Context, feedKey, feedURL string) ([]news.FeedEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	// Реалистичные заголовки, чтобы избежать блокировки (403 Forbidden)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, */*")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	feed, err := c.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	entries := make([]news.FeedEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		entry, err := normalizeItem(feedKey, item)
		if err != nil {
			log.Printf("Skipping entry in feed %s: %v", feedKey, err)
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
