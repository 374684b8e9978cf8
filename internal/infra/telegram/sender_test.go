package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/subtrackhq/subtrack/internal/config"
)

func newTestSender(t *testing.T, handler http.HandlerFunc) (*Sender, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sender := NewSender(&config.TelegramConfig{
		BotToken:    "test-token",
		APIBaseURL:  server.URL,
		SendTimeout: 5 * time.Second,
	})
	if sender == nil {
		t.Fatal("expected a sender when a token is configured")
	}
	return sender, server
}

func TestSendSuccess(t *testing.T) {
	var gotPath string
	var gotBody sendMessageRequest

	sender, _ := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"ok":true}`)); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	})

	if err := sender.Send(context.Background(), "12345", "Netflix charges tomorrow"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/bottest-token/sendMessage" {
		t.Errorf("path = %s, want /bottest-token/sendMessage", gotPath)
	}
	if gotBody.ChatID != "12345" {
		t.Errorf("chat_id = %s, want 12345", gotBody.ChatID)
	}
	if gotBody.Text != "Netflix charges tomorrow" {
		t.Errorf("text = %q", gotBody.Text)
	}
}

func TestSendAPIRejection(t *testing.T) {
	sender, _ := newTestSender(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		if _, err := w.Write([]byte(`{"ok":false,"description":"bot was blocked by the user"}`)); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	})

	if err := sender.Send(context.Background(), "12345", "hello"); err == nil {
		t.Fatal("expected an error when the API rejects the message")
	}
}

func TestNewSenderDisabledWithoutToken(t *testing.T) {
	if s := NewSender(&config.TelegramConfig{}); s != nil {
		t.Fatal("expected nil sender without a bot token")
	}
}
