package sources

import (
	"errors"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"

	"github.com/num311/news-reader/internal/news"
)

// errNoIdentifier означает, что у записи нет ни id, ни ссылки, ни заголовка.
var errNoIdentifier = errors.New("entry has no usable identifier")

// normalizeItem превращает «сырую» запись gofeed в news.FeedEntry.
// Идентификатор выбирается по первому непустому полю: GUID, ссылка,
// заголовок. Если все три отсутствуют, запись непригодна.
func normalizeItem(feedKey string, item *gofeed.Item) (news.FeedEntry, error) {
	id := firstNonEmpty(item.GUID, item.Link, item.Title)
	if id == "" {
		return news.FeedEntry{}, errNoIdentifier
	}

	return news.FeedEntry{
		ID:          id,
		Title:       strings.TrimSpace(item.Title),
		Summary:     strings.TrimSpace(selectSummary(item)),
		Author:      selectAuthor(item),
		Link:        strings.TrimSpace(item.Link),
		PublishedAt: resolvePublishedAt(item),
		SourceFeed:  feedKey,
	}, nil
}

// resolvePublishedAt восстанавливает время публикации: сначала уже
// разобранные gofeed значения (updated, затем published), потом
// свободные строки через толерантный парсер дат. Если ничего не
// получилось, запись остаётся без даты — это не ошибка.
// Время без часового пояса трактуется как UTC.
func resolvePublishedAt(item *gofeed.Item) *time.Time {
	if item.UpdatedParsed != nil {
		t := item.UpdatedParsed.UTC()
		return &t
	}
	if item.PublishedParsed != nil {
		t := item.PublishedParsed.UTC()
		return &t
	}
	for _, raw := range []string{item.Updated, item.Published} {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if t, err := dateparse.ParseIn(raw, time.UTC); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func selectSummary(item *gofeed.Item) string {
	if item.Description != "" {
		return item.Description
	}
	return item.Content
}

func selectAuthor(item *gofeed.Item) string {
	if len(item.Authors) > 0 && item.Authors[0] != nil {
		return item.Authors[0].Name
	}
	if item.Author != nil {
		return item.Author.Name
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
