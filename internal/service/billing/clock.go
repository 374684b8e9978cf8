// Package billing implements charge date arithmetic for recurring items.
// All computation happens at calendar-day granularity; time of day and
// zone offsets inside a day are ignored.
package billing

import (
	"time"

	"github.com/subtrackhq/subtrack/internal/domain"
)

// maxRolls bounds the forward stepping after the direct jump. The jump
// lands within a couple of periods of the target, so hitting this guard
// means the inputs are malformed and the computation fails closed.
const maxRolls = 48

// Cycle is the interval between two consecutive charge dates. Start is
// the previous charge date (or the item's start date for the first
// cycle), End is the next one. Half-open: [Start, End).
type Cycle struct {
	Start time.Time
	End   time.Time
}

// NextCharge returns the first charge date on or after asOf's calendar
// day, reached from start by whole period increments. Month periods keep
// the start's day-of-month, clamped to the last day of shorter months;
// year periods clamp Feb 29 the same way.
func NextCharge(start time.Time, period domain.Period, asOf time.Time) (time.Time, error) {
	c, err := CurrentCycle(start, period, asOf)
	if err != nil {
		return time.Time{}, err
	}
	return c.End, nil
}

// CurrentCycle returns the cycle that asOf falls into. For items whose
// start date is still in the future both bounds collapse onto the start
// date: the first charge is the start itself.
func CurrentCycle(start time.Time, period domain.Period, asOf time.Time) (Cycle, error) {
	if !period.Valid() {
		return Cycle{}, domain.ErrInvalidPeriod
	}

	startD := domain.DateOf(start)
	asOfD := domain.DateOf(asOf)

	if !startD.Before(asOfD) {
		return Cycle{Start: startD, End: startD}, nil
	}

	// Jump close to the target by direct period counting, then step.
	n := periodsBetween(startD, asOfD, period)
	if n < 0 {
		n = 0
	}

	candidate := addPeriods(startD, period, n)
	for i := 0; candidate.Before(asOfD); i++ {
		if i >= maxRolls {
			return Cycle{}, domain.ErrDateComputation
		}
		n++
		candidate = addPeriods(startD, period, n)
	}

	cycleStart := startD
	if n > 0 {
		cycleStart = addPeriods(startD, period, n-1)
	}

	return Cycle{Start: cycleStart, End: candidate}, nil
}

// DaysUntil returns the number of whole days from asOf to the charge
// date at midnight granularity. Zero when asOf is the charge day.
func DaysUntil(charge, asOf time.Time) int {
	diff := domain.DateOf(charge).Sub(domain.DateOf(asOf))
	// Rounding absorbs the odd hour a DST transition adds or removes.
	return int((diff + 12*time.Hour) / (24 * time.Hour))
}

// periodsBetween estimates how many whole periods separate two dates.
// May be off by one around month ends; callers step forward to correct.
func periodsBetween(from, to time.Time, period domain.Period) int {
	switch period {
	case domain.PeriodYear:
		return to.Year() - from.Year() - 1
	default:
		months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
		return months - 1
	}
}

// addPeriods adds n periods to a date, clamping the day-of-month. The
// addition always starts from the original date so repeated clamping
// does not drift (Jan 31 -> Feb 28 -> Mar 31, not Mar 28).
func addPeriods(date time.Time, period domain.Period, n int) time.Time {
	y, m, d := date.Date()

	if period == domain.PeriodYear {
		y += n
	} else {
		y += (int(m) - 1 + n) / 12
		m = time.Month((int(m)-1+n)%12 + 1)
	}

	if last := lastDayOfMonth(y, m, date.Location()); d > last {
		d = last
	}

	return time.Date(y, m, d, 0, 0, 0, 0, date.Location())
}

func lastDayOfMonth(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
