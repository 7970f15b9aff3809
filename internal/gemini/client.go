package gemini

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"google.golang.org/genai"
)

// GeminiClient определяет интерфейс для работы с Gemini API.
// Это позволяет легко создавать моки для тестирования.
type GeminiClient interface {
	GenerateText(ctx context.Context, model string, prompt string) (string, error)
}

// Client инкапсулирует работу с Gemini API через официальный SDK.
type Client struct {
	client *genai.Client
}

// Убеждаемся, что Client реализует интерфейс GeminiClient.
var _ GeminiClient = (*Client)(nil)

// NewClient создаёт новый клиент. Читает GEMINI_API_KEY из переменной
// окружения и явно передаёт его в SDK.
func NewClient() (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx := context.Background()
	config := &genai.ClientConfig{
		APIKey: apiKey,
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{client: client}, nil
}

// GenerateText отправляет запрос к Gemini API и возвращает текстовый ответ.
// Временные ошибки повторяются с нарастающей задержкой.
func (c *Client) GenerateText(ctx context.Context, model string, prompt string) (string, error) {
	const maxRetries = 3
	const baseDelay = 5 * time.Second

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := baseDelay * time.Duration(attempt)
			log.Printf("Retrying Gemini API request (attempt %d/%d) after %v...", attempt+1, maxRetries, delay)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}

		result, err := c.client.Models.GenerateContent(
			ctx,
			model,
			genai.Text(prompt),
			nil,
		)
		if err == nil {
			text, textErr := result.Text()
			if textErr != nil {
				return "", fmt.Errorf("get text from result: %w", textErr)
			}
			return text, nil
		}

		lastErr = err
	}

	return "", fmt.Errorf("gemini request failed after %d attempts: %w", maxRetries, lastErr)
}
