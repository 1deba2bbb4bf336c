package slotgrid

import (
	"time"

	"github.com/kirinyoku/courtbook/internal/domain"
)

const (
	longLabelLayout  = "Monday, Jan 2"
	shortLabelLayout = "Jan 2"
)

// NextOccurrence resolves day to its next date after now, between one and
// seven days ahead. A day equal to now's weekday resolves to next week.
// The result stays in now's location. day must be valid.
func NextOccurrence(day domain.Weekday, now time.Time) domain.Projection {
	delta := day.Index() - domain.WeekdayOf(now).Index()
	if delta <= 0 {
		delta += 7
	}

	date := now.AddDate(0, 0, delta)

	return domain.Projection{
		Date:       date,
		ISOKey:     date.Format(domain.DateFormat),
		LongLabel:  date.Format(longLabelLayout),
		ShortLabel: date.Format(shortLabelLayout),
	}
}
