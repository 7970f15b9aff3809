package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TelegramClient определяет интерфейс для работы с Telegram Bot API.
// Это позволяет легко создавать моки для тестирования.
type TelegramClient interface {
	SendMessage(ctx context.Context, chatID string, text string) error
}

// Client инкапсулирует работу с Telegram Bot API.
type Client struct {
	token  string
	client *http.Client
	apiURL string
}

// Убеждаемся, что Client реализует интерфейс TelegramClient.
var _ TelegramClient = (*Client)(nil)

// NewClient создаёт клиента. token обязателен.
func NewClient(token string) *Client {
	return &Client{
		token: token,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiURL: fmt.Sprintf("https://api.telegram.org/bot%s", token),
	}
}

// SendMessage отправляет текстовое сообщение в указанный чат.
func (c *Client) SendMessage(ctx context.Context, chatID string, text string) error {
	payload := map[string]string{
		"chat_id": chatID,
		"text":    text,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/sendMessage", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("telegram api status %d", resp.StatusCode)
	}

	return nil
}
