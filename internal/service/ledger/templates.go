package ledger

import (
	"fmt"
	"strconv"
	"time"

	"github.com/subtrackhq/subtrack/internal/domain"
)

// MessageParams carries everything a template may interpolate. Unused
// fields are ignored by templates that do not need them.
type MessageParams struct {
	ItemTitle    string
	Price        float64
	Currency     domain.Currency
	DaysUntil    int
	ChargeDate   time.Time
	ItemCount    int
	MonthlyTotal float64
}

type composer func(MessageParams) (title, message string)

// composers maps every event type to its message builder. The table is
// checked for exhaustiveness in tests; adding an event type without a
// composer fails the build of its ledger entry.
var composers = map[domain.EventType]composer{
	domain.EventItemCreated: func(p MessageParams) (string, string) {
		return "Subscription added",
			fmt.Sprintf("%s (%s %s) is now tracked.", p.ItemTitle, money(p.Price), p.Currency)
	},
	domain.EventItemUpdated: func(p MessageParams) (string, string) {
		return "Subscription updated",
			fmt.Sprintf("%s was changed.", p.ItemTitle)
	},
	domain.EventItemDeleted: func(p MessageParams) (string, string) {
		return "Subscription removed",
			fmt.Sprintf("%s is no longer tracked.", p.ItemTitle)
	},
	domain.EventPaymentReminder: func(p MessageParams) (string, string) {
		when := "today"
		switch p.DaysUntil {
		case 0:
		case 1:
			when = "tomorrow"
		default:
			when = fmt.Sprintf("in %d days", p.DaysUntil)
		}
		return "Upcoming charge",
			fmt.Sprintf("%s charges %s %s %s (%s).",
				p.ItemTitle, money(p.Price), p.Currency, when, p.ChargeDate.Format("2006-01-02"))
	},
	domain.EventChannelConnected: func(MessageParams) (string, string) {
		return "Telegram connected",
			"Payment reminders will now also arrive in Telegram."
	},
	domain.EventChannelDisconnected: func(MessageParams) (string, string) {
		return "Telegram disconnected",
			"Notifications will only appear in the app from now on."
	},
	domain.EventTest: func(MessageParams) (string, string) {
		return "Test notification",
			"If you can read this, the channel works."
	},
	domain.EventPeriodicReport: func(p MessageParams) (string, string) {
		return "Monthly spending report",
			fmt.Sprintf("You track %d active subscriptions totalling %s/month.",
				p.ItemCount, money(p.MonthlyTotal))
	},
}

// Compose renders the title and message for an event type. Unknown
// types report domain.ErrInvalidEventType.
func Compose(t domain.EventType, p MessageParams) (string, string, error) {
	c, ok := composers[t]
	if !ok {
		return "", "", domain.ErrInvalidEventType
	}
	title, message := c(p)
	return title, message, nil
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
