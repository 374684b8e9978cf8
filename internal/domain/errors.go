package domain

import "errors"

var (
	ErrOwnerRequired         = errors.New("owner id is required")
	ErrTitleRequired         = errors.New("title is required")
	ErrNegativePrice         = errors.New("price must not be negative")
	ErrInvalidPeriod         = errors.New("period must be month or year")
	ErrInvalidCurrency       = errors.New("unsupported currency code")
	ErrStartDateRequired     = errors.New("start date is required")
	ErrInvalidReminderOffset = errors.New("reminder offset must be positive and within the period")
	ErrInvalidEventType      = errors.New("unknown notification event type")

	ErrItemNotFound  = errors.New("item not found")
	ErrEventNotFound = errors.New("notification event not found")
	ErrLinkNotFound  = errors.New("channel link not found")

	ErrDateComputation = errors.New("charge date computation exceeded iteration guard")
	ErrDuplicateScope  = errors.New("reminder already recorded for this cycle")
)
