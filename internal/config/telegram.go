package config

import (
	"os"
	"time"
)

const (
	telegramBotTokenEnv    = "TELEGRAM_BOT_TOKEN"
	telegramAPIBaseEnv     = "TELEGRAM_API_BASE_URL"
	telegramSendTimeoutEnv = "TELEGRAM_SEND_TIMEOUT_SECONDS"

	defaultTelegramAPIBase     = "https://api.telegram.org"
	defaultTelegramSendTimeout = 10 * time.Second
)

type TelegramConfig struct {
	BotToken    string
	APIBaseURL  string
	SendTimeout time.Duration
}

// Enabled reports whether a bot token is configured. Without one the
// dispatcher runs with delivery disabled and events stay ledger-only.
func (c *TelegramConfig) Enabled() bool {
	return c != nil && c.BotToken != ""
}

func LoadTelegramConfig() *TelegramConfig {
	timeout := defaultTelegramSendTimeout
	if v := os.Getenv(telegramSendTimeoutEnv); v != "" {
		if parsed, err := time.ParseDuration(v + "s"); err == nil && parsed > 0 {
			timeout = parsed
		}
	}

	return &TelegramConfig{
		BotToken:    os.Getenv(telegramBotTokenEnv),
		APIBaseURL:  getEnvOrDefault(telegramAPIBaseEnv, defaultTelegramAPIBase),
		SendTimeout: timeout,
	}
}
