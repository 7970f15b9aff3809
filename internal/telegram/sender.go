package telegram

import (
	"context"
	"log"
	"strings"
	"time"
)

const (
	// retryAttempts - количество попыток отправки при ошибке
	retryAttempts = 3
	// retryDelay - базовая задержка между попытками
	retryDelay = 2 * time.Second
	// rateLimitDelay - минимальная пауза между сообщениями, чтобы не
	// упираться в лимиты Bot API
	rateLimitDelay = time.Second / 3
)

// Sender отправляет подготовленные сообщения в один настроенный чат.
type Sender struct {
	client TelegramClient
	chatID string
}

// NewSender создаёт новый экземпляр отправителя.
func NewSender(client TelegramClient, chatID string) *Sender {
	return &Sender{
		client: client,
		chatID: chatID,
	}
}

// Send реализует app.ChatNotifier. Сообщения отправляются
// последовательно; ошибка отправки одного сообщения логируется и не
// мешает отправке остальных.
func (s *Sender) Send(ctx context.Context, messages []string) error {
	if len(messages) == 0 {
		return nil
	}

	sentCount := 0
	lastSentTime := time.Time{}

	for _, message := range messages {
		elapsed := time.Since(lastSentTime)
		if elapsed < rateLimitDelay {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(rateLimitDelay - elapsed):
			}
		}

		if err := s.sendWithRetry(ctx, message); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("Failed to send chat message after %d attempts: %v", retryAttempts, err)
			continue
		}

		sentCount++
		lastSentTime = time.Now()
	}

	log.Printf("Sent %d/%d chat messages", sentCount, len(messages))
	return nil
}

// sendWithRetry отправляет сообщение с повторными попытками при ошибках.
func (s *Sender) sendWithRetry(ctx context.Context, message string) error {
	var lastErr error

	for attempt := 0; attempt < retryAttempts; attempt++ {
		if attempt > 0 {
			delay := retryDelay * time.Duration(attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := s.client.SendMessage(ctx, s.chatID, message)
		if err == nil {
			return nil
		}
		lastErr = err

		// Для части ошибок повтор не поможет (чат не найден, бот заблокирован)
		if !isRetryableError(err) {
			return err
		}
	}

	return lastErr
}

// isRetryableError определяет, можно ли повторить отправку при данной ошибке.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	nonRetryable := []string{
		"chat not found",
		"bot was blocked",
		"user is deactivated",
		"message is too long",
		"bad request",
		"status 403",
		"status 400",
	}
	for _, marker := range nonRetryable {
		if strings.Contains(errStr, marker) {
			return false
		}
	}
	return true
}
