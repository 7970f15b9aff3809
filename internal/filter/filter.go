package filter

import (
	"strings"
	"time"

	"github.com/num311/news-reader/internal/news"
)

// Filter применяет правила отбора записей: окно свежести и ключевые слова.
type Filter struct {
	keywords    []string
	windowHours int
}

// New создаёт фильтр. Порядок ключевых слов сохраняется: при совпадении
// нескольких слов возвращается первое по конфигурации.
func New(keywords []string, windowHours int) *Filter {
	return &Filter{
		keywords:    keywords,
		windowHours: windowHours,
	}
}

// IsRecent сообщает, попадает ли запись в окно свежести относительно now.
// Запись без даты считается свежей: недатированную новость нельзя
// молча отбросить. Граница окна строгая: запись ровно на границе
// свежей не считается.
func (f *Filter) IsRecent(entry news.FeedEntry, now time.Time) bool {
	if entry.PublishedAt == nil {
		return true
	}
	cutoff := now.Add(-time.Duration(f.windowHours) * time.Hour)
	return entry.PublishedAt.After(cutoff)
}

// MatchKeyword возвращает первое ключевое слово (в порядке конфигурации),
// которое встречается в заголовке или аннотации записи без учёта регистра.
func (f *Filter) MatchKeyword(entry news.FeedEntry) (string, bool) {
	title := strings.ToLower(entry.Title)
	summary := strings.ToLower(entry.Summary)

	for _, keyword := range f.keywords {
		kw := strings.ToLower(keyword)
		if kw == "" {
			continue
		}
		if strings.Contains(title, kw) || strings.Contains(summary, kw) {
			return keyword, true
		}
	}
	return "", false
}
