package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	reminderOffsetsEnv       = "REMINDER_OFFSETS"
	sweepIntervalMinutesEnv  = "SWEEP_INTERVAL_MINUTES"
	monthlyReportEnabledEnv  = "MONTHLY_REPORT_ENABLED"
	historyDefaultLimitEnv   = "NOTIFICATION_HISTORY_LIMIT"

	defaultSweepIntervalMinutes = 1440
	defaultHistoryLimit         = 50
)

// defaultReminderOffsets apply to items without their own offsets.
var defaultReminderOffsets = []int{7, 3, 1}

type ReminderConfig struct {
	// Offsets are days-before-charge at which reminders fire, for items
	// that do not override them.
	Offsets              []int
	SweepInterval        time.Duration
	MonthlyReportEnabled bool
	HistoryDefaultLimit  int
}

func LoadReminderConfig() (*ReminderConfig, error) {
	offsets := defaultReminderOffsets
	if raw := os.Getenv(reminderOffsetsEnv); raw != "" {
		parsed, err := parseOffsets(raw)
		if err != nil {
			return nil, err
		}
		offsets = parsed
	}

	interval := defaultSweepIntervalMinutes
	if v := os.Getenv(sweepIntervalMinutesEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			interval = parsed
		}
	}

	limit := defaultHistoryLimit
	if v := os.Getenv(historyDefaultLimitEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	return &ReminderConfig{
		Offsets:              offsets,
		SweepInterval:        time.Duration(interval) * time.Minute,
		MonthlyReportEnabled: os.Getenv(monthlyReportEnabledEnv) != "false",
		HistoryDefaultLimit:  limit,
	}, nil
}

func parseOffsets(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	offsets := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			return nil, ErrInvalidReminderOffset
		}
		offsets = append(offsets, n)
	}
	return offsets, nil
}
