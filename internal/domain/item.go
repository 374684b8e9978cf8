package domain

import (
	"time"
)

// Period represents the billing period of a tracked item.
type Period string

const (
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

func (p Period) String() string {
	return string(p)
}

func (p Period) Valid() bool {
	return p == PeriodMonth || p == PeriodYear
}

// Days returns the shortest possible length of the period in days.
// Used as the upper bound when validating reminder offsets.
func (p Period) Days() int {
	if p == PeriodYear {
		return 365
	}
	return 28
}

// Currency is the ISO-style code an item is billed in.
type Currency string

const (
	CurrencyRUB Currency = "RUB"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

func (c Currency) Valid() bool {
	return c == CurrencyRUB || c == CurrencyUSD || c == CurrencyEUR
}

// Item is a tracked subscription or recurring service.
type Item struct {
	ID           string
	OwnerID      string
	Title        string
	Price        float64
	Currency     Currency
	Period       Period
	StartDate    time.Time
	Category     string
	Active       bool
	ReminderDays []int
	CreatedAt    time.Time
}

// MonthlyPrice normalizes the price to a per-month figure.
func (i *Item) MonthlyPrice() float64 {
	if i.Period == PeriodYear {
		return i.Price / 12
	}
	return i.Price
}

// Validate checks the field invariants shared by create and update.
func (i *Item) Validate() error {
	if i.OwnerID == "" {
		return ErrOwnerRequired
	}
	if i.Title == "" {
		return ErrTitleRequired
	}
	if i.Price < 0 {
		return ErrNegativePrice
	}
	if !i.Period.Valid() {
		return ErrInvalidPeriod
	}
	if !i.Currency.Valid() {
		return ErrInvalidCurrency
	}
	if i.StartDate.IsZero() {
		return ErrStartDateRequired
	}
	for _, d := range i.ReminderDays {
		if d <= 0 || d > i.Period.Days() {
			return ErrInvalidReminderOffset
		}
	}
	return nil
}
