package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/courtbook/internal/domain"
	"github.com/kirinyoku/courtbook/internal/slotgrid"
)

func slot(id int64, day domain.Weekday, start, end string) domain.CourtSlot {
	return domain.CourtSlot{ID: id, CourtID: 1, DayOfWeek: day, StartTime: start, EndTime: end}
}

func TestScheduleOrdersDaysByProjectedDate(t *testing.T) {
	// Wednesday.
	now := time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)

	days := Schedule([]domain.CourtSlot{
		slot(1, domain.Monday, "22:00", "23:00"),
		slot(2, domain.Wednesday, "06:00", "07:00"),
		slot(3, domain.Thursday, "12:00", "13:00"),
		slot(4, domain.Monday, "06:00", "07:00"),
		slot(5, domain.Monday, "00:00", "01:00"),
		slot(6, "Someday", "06:00", "07:00"),
	}, now)

	require.Len(t, days, 3)

	assert.Equal(t, domain.Thursday, days[0].Day)
	assert.Equal(t, "2024-01-04", days[0].Next.ISOKey)

	assert.Equal(t, domain.Monday, days[1].Day)
	assert.Equal(t, "2024-01-08", days[1].Next.ISOKey)

	assert.Equal(t, domain.Wednesday, days[2].Day)
	assert.Equal(t, "2024-01-10", days[2].Next.ISOKey)

	var ids []int64
	for _, s := range days[1].Slots {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int64{4, 1, 5}, ids)
}

func TestDecorateLabels(t *testing.T) {
	now := time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)

	bookings := []domain.BookingDetails{
		{Booking: domain.Booking{Status: true}, Slot: slot(1, domain.Monday, "06:00", "07:00")},
		{Booking: domain.Booking{Status: false}, Slot: slot(2, domain.Friday, "06:00", "07:00")},
	}

	decorate(bookings, now, LabelUpcoming)

	assert.Equal(t, LabelUpcoming, bookings[0].Label)
	assert.Equal(t, "Jan 8", bookings[0].Next.ShortLabel)
	assert.Equal(t, LabelCancelled, bookings[1].Label)
	assert.Equal(t, "Friday, Jan 5", bookings[1].Next.LongLabel)
}

func TestGrid(t *testing.T) {
	week, err := Grid("")
	require.NoError(t, err)
	require.Len(t, week, 7)

	total := 0
	for _, d := range week {
		require.Len(t, d.Periods, 4)
		for _, p := range d.Periods {
			total += len(p.Slots)
		}
	}
	assert.Equal(t, len(domain.Week)*slotgrid.SlotsPerDay, total)

	day, err := Grid("monday")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, domain.Monday, day[0].Day)
	assert.Equal(t, domain.Morning, day[0].Periods[0].Period)
	assert.Equal(t, "06:00", day[0].Periods[0].Slots[0].StartTime)
	assert.Len(t, day[0].Periods[3].Slots, 8)

	_, err = Grid("Funday")
	assert.ErrorIs(t, err, ErrInvalidDay)
}
