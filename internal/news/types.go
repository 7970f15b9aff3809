package news

import "time"

// FeedEntry описывает запись ленты после нормализации.
// Поля неизменяемы после создания.
type FeedEntry struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	Author      string     `json:"author,omitempty"`
	Link        string     `json:"link,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	SourceFeed  string     `json:"source_feed"`
}

// MatchedItem — запись, прошедшая все фильтры, вместе с ключевым словом,
// по которому она была отобрана.
type MatchedItem struct {
	Entry   FeedEntry `json:"entry"`
	Keyword string    `json:"keyword"`
}

// DedupState хранит идентификаторы записей, по которым уже были
// отправлены уведомления, с привязкой к ключу ленты.
type DedupState struct {
	LastRun  time.Time           `json:"last_run"`
	Notified map[string][]string `json:"notified"`
}

// WasNotified сообщает, отправлялось ли уведомление по записи entryID ленты feedKey.
func (s *DedupState) WasNotified(feedKey, entryID string) bool {
	for _, id := range s.Notified[feedKey] {
		if id == entryID {
			return true
		}
	}
	return false
}

// MarkNotified добавляет запись в историю уведомлений.
// Повторное добавление того же идентификатора игнорируется;
// порядок добавления сохраняется (старые записи идут первыми).
func (s *DedupState) MarkNotified(feedKey, entryID string) {
	if s.WasNotified(feedKey, entryID) {
		return
	}
	if s.Notified == nil {
		s.Notified = make(map[string][]string)
	}
	s.Notified[feedKey] = append(s.Notified[feedKey], entryID)
}
