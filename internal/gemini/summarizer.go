package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/num311/news-reader/internal/news"
)

const defaultModel = "gemini-2.5-flash"

// maxHeadlinesForIntro ограничивает размер промпта.
const maxHeadlinesForIntro = 25

// Summarizer готовит короткий вводный абзац для письма по заголовкам
// отобранных записей. Это необязательный этап: без API-ключа пайплайн
// работает так же, просто без вводки.
type Summarizer struct {
	client GeminiClient
	model  string
}

// NewSummarizer создаёт новый экземпляр.
func NewSummarizer(client GeminiClient, model string) *Summarizer {
	if model == "" {
		model = defaultModel
	}
	return &Summarizer{
		client: client,
		model:  model,
	}
}

// Summarize реализует app.DigestSummarizer: возвращает 2-3 предложения
// обзора по заголовкам. Ошибка не критична для вызывающей стороны.
func (s *Summarizer) Summarize(ctx context.Context, items []news.MatchedItem) (string, error) {
	if len(items) == 0 {
		return "", nil
	}

	prompt := buildIntroPrompt(items)
	text, err := s.client.GenerateText(ctx, s.model, prompt)
	if err != nil {
		return "", fmt.Errorf("generate digest intro: %w", err)
	}

	return strings.TrimSpace(text), nil
}

func buildIntroPrompt(items []news.MatchedItem) string {
	var sb strings.Builder
	sb.WriteString("You are writing the opening paragraph of a news alert email.\n")
	sb.WriteString("Summarize the common themes of the following headlines in 2-3 plain sentences.\n")
	sb.WriteString("Do not use markdown, lists or greetings.\n\nHeadlines:\n")

	count := len(items)
	if count > maxHeadlinesForIntro {
		count = maxHeadlinesForIntro
	}
	for _, item := range items[:count] {
		sb.WriteString(fmt.Sprintf("- %s (keyword: %s)\n", item.Entry.Title, item.Keyword))
	}
	return sb.String()
}
