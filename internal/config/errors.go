package config

import "errors"

var (
	ErrRedisAddrMissing      = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB        = errors.New("REDIS_DB must be a valid integer")
	ErrPostgresDSNMissing    = errors.New("POSTGRES_DSN is required")
	ErrInvalidReminderOffset = errors.New("REMINDER_OFFSETS must be positive integers")
)
