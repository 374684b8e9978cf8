// Package telegram delivers notifications through the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/subtrackhq/subtrack/internal/config"
	"github.com/subtrackhq/subtrack/internal/domain"
	"github.com/subtrackhq/subtrack/internal/observability/logging"
	"github.com/subtrackhq/subtrack/internal/observability/tracing"
)

type Sender struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewSender builds a ChannelSender over the Bot API. Returns nil when
// no bot token is configured; the dispatcher treats a nil sender as
// channel delivery disabled.
func NewSender(cfg *config.TelegramConfig) *Sender {
	if !cfg.Enabled() {
		return nil
	}

	timeout := cfg.SendTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Sender{
		token:   cfg.BotToken,
		baseURL: cfg.APIBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

var _ domain.ChannelSender = (*Sender)(nil)

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (s *Sender) Send(ctx context.Context, chatID, text string) error {
	payload, err := json.Marshal(sendMessageRequest{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("failed to encode sendMessage payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, s.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	requestID := logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx))
	req.Header.Set("x-request-id", requestID)

	sendCtx, span := tracing.StartChannelSendSpan(ctx, chatID)
	defer span.End()
	tracing.InjectToHTTPRequest(sendCtx, req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		slog.Error("failed to send request to Telegram",
			slog.String("chat_id", chatID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var apiResp sendMessageResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		slog.Error("failed to decode response from Telegram",
			slog.Int("status_code", resp.StatusCode),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || !apiResp.OK {
		slog.Error("Telegram rejected the message",
			slog.String("chat_id", chatID),
			slog.Int("status_code", resp.StatusCode),
			slog.String("description", apiResp.Description),
		)
		return fmt.Errorf("telegram send failed: status %d: %s", resp.StatusCode, apiResp.Description)
	}

	return nil
}
