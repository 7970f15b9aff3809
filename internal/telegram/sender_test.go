package telegram

import (
	"context"
	"errors"
	"testing"
)

// mockTelegramClient - мок для тестирования Sender
type mockTelegramClient struct {
	sendMessageFunc func(ctx context.Context, chatID string, text string) error
	calls           []string
}

func (m *mockTelegramClient) SendMessage(ctx context.Context, chatID string, text string) error {
	m.calls = append(m.calls, text)
	if m.sendMessageFunc != nil {
		return m.sendMessageFunc(ctx, chatID, text)
	}
	return nil
}

func TestSender_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("empty messages is a no-op", func(t *testing.T) {
		mock := &mockTelegramClient{}
		s := NewSender(mock, "123")
		if err := s.Send(ctx, nil); err != nil {
			t.Fatalf("Send() error = %v", err)
		}
		if len(mock.calls) != 0 {
			t.Errorf("Send() made %d calls, want 0", len(mock.calls))
		}
	})

	t.Run("all messages delivered", func(t *testing.T) {
		mock := &mockTelegramClient{}
		s := NewSender(mock, "123")
		if err := s.Send(ctx, []string{"one", "two"}); err != nil {
			t.Fatalf("Send() error = %v", err)
		}
		if len(mock.calls) != 2 {
			t.Errorf("Send() made %d calls, want 2", len(mock.calls))
		}
	})

	t.Run("failure of one message does not block the rest", func(t *testing.T) {
		mock := &mockTelegramClient{}
		mock.sendMessageFunc = func(ctx context.Context, chatID string, text string) error {
			if text == "bad" {
				// Неповторяемая ошибка, чтобы не ждать retry-задержек
				return errors.New("telegram api status 400")
			}
			return nil
		}
		s := NewSender(mock, "123")
		if err := s.Send(ctx, []string{"bad", "good"}); err != nil {
			t.Fatalf("Send() error = %v", err)
		}
		if len(mock.calls) != 2 {
			t.Errorf("Send() made %d calls, want 2", len(mock.calls))
		}
	})

	t.Run("cancelled context stops sending", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		mock := &mockTelegramClient{}
		mock.sendMessageFunc = func(ctx context.Context, chatID string, text string) error {
			return ctx.Err()
		}
		s := NewSender(mock, "123")
		if err := s.Send(cancelled, []string{"one", "two"}); err == nil {
			t.Fatal("Send() should return context error")
		}
	})
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"network error is retryable", errors.New("connection reset by peer"), true},
		{"server error is retryable", errors.New("telegram api status 502"), true},
		{"chat not found is not retryable", errors.New("Bad Request: chat not found"), false},
		{"blocked bot is not retryable", errors.New("Forbidden: bot was blocked by the user"), false},
		{"status 400 is not retryable", errors.New("telegram api status 400"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.want {
				t.Errorf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
