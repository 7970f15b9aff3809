package formatter

import (
	"fmt"
	"html"
	"strings"

	"github.com/num311/news-reader/internal/news"
)

const (
	// chatMaxMessageLength - максимальная длина сообщения в чате (лимит Telegram)
	chatMaxMessageLength = 4096
	// ellipsis - символы, добавляемые при обрезке сообщения
	ellipsis = "..."
	// linkFallback подставляется вместо отсутствующей ссылки
	linkFallback = "#"
	// emailSubject - общая тема письма для выборки из нескольких лент
	emailSubject = "News alert: keyword matches in your feeds"
)

// Formatter готовит payload для каналов уведомлений: HTML-фрагмент для
// письма и плоский текст для чата.
type Formatter struct{}

// New создаёт новый экземпляр форматтера.
func New() *Formatter {
	return &Formatter{}
}

// EmailSubject возвращает тему письма. Тема фиксированная: письмо
// собирает записи сразу из всех лент.
func (f *Formatter) EmailSubject() string {
	return emailSubject
}

// BuildEmailBody собирает HTML-фрагмент письма: по блоку на запись,
// в порядке слияния. Текст записи экранируется.
func (f *Formatter) BuildEmailBody(items []news.MatchedItem) string {
	var sb strings.Builder
	for _, item := range items {
		entry := item.Entry
		link := entry.Link
		if link == "" {
			link = linkFallback
		}

		sb.WriteString(fmt.Sprintf("<b>Title :</b> <a href=\"%s\">%s</a><br>", html.EscapeString(link), html.EscapeString(entry.Title)))
		if entry.Author != "" {
			sb.WriteString(fmt.Sprintf("<b>Author :</b> %s<br>", html.EscapeString(entry.Author)))
		}
		sb.WriteString(fmt.Sprintf("<b>Keyword :</b> %s<br>", html.EscapeString(item.Keyword)))
		sb.WriteString(fmt.Sprintf("<p>%s</p><hr>", html.EscapeString(entry.Summary)))
	}
	return sb.String()
}

// BuildChatMessages готовит по одному сообщению на запись: заголовок,
// ключевое слово и ссылка. Сообщение длиннее лимита обрезается ровно
// до chatMaxMessageLength, последние три символа заменяются на "...".
func (f *Formatter) BuildChatMessages(items []news.MatchedItem) []string {
	messages := make([]string, 0, len(items))
	for _, item := range items {
		messages = append(messages, formatChatMessage(item))
	}
	return messages
}

func formatChatMessage(item news.MatchedItem) string {
	entry := item.Entry
	link := entry.Link
	if link == "" {
		link = linkFallback
	}

	msg := fmt.Sprintf("%s\nKeyword: %s\n%s", entry.Title, item.Keyword, link)
	return truncateMessage(msg)
}

// truncateMessage возвращает строку не длиннее chatMaxMessageLength.
// Обрезанная строка всегда имеет ровно максимальную длину.
func truncateMessage(msg string) string {
	if len(msg) <= chatMaxMessageLength {
		return msg
	}
	return msg[:chatMaxMessageLength-len(ellipsis)] + ellipsis
}
