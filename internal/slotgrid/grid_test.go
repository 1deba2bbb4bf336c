package slotgrid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/courtbook/internal/domain"
)

func TestGridSize(t *testing.T) {
	assert.Len(t, Grid(), len(domain.Week)*SlotsPerDay)

	for _, d := range domain.Week {
		assert.Len(t, ForDay(d), SlotsPerDay, d)
	}

	assert.Nil(t, ForDay("Caturday"))
}

func TestForDayMondayFirstSlot(t *testing.T) {
	slots := ForDay(domain.Monday)
	require.Len(t, slots, 24)

	assert.Equal(t, Slot{
		Day:       domain.Monday,
		Period:    domain.Morning,
		StartTime: "06:00",
		EndTime:   "07:00",
	}, slots[0])
}

func TestPeriodsTileTheirWindow(t *testing.T) {
	want := map[domain.Period]struct {
		count int
		start string
		end   string
	}{
		domain.Morning:   {6, "06:00", "12:00"},
		domain.Afternoon: {6, "12:00", "18:00"},
		domain.Evening:   {4, "18:00", "22:00"},
		domain.Night:     {8, "22:00", "06:00"},
	}

	for _, d := range domain.Week {
		byPeriod := map[domain.Period][]Slot{}
		for _, s := range ForDay(d) {
			byPeriod[s.Period] = append(byPeriod[s.Period], s)
		}

		for p, w := range want {
			slots := byPeriod[p]
			require.Len(t, slots, w.count, "%s %s", d, p)
			assert.Equal(t, w.start, slots[0].StartTime, "%s %s", d, p)
			assert.Equal(t, w.end, slots[len(slots)-1].EndTime, "%s %s", d, p)

			for i := 1; i < len(slots); i++ {
				assert.Equal(t, slots[i-1].EndTime, slots[i].StartTime, "gap in %s %s", d, p)
			}
		}
	}
}

func TestNightClockOrder(t *testing.T) {
	var starts []string
	for _, s := range ForDay(domain.Friday) {
		if s.Period == domain.Night {
			starts = append(starts, s.StartTime)
		}
	}

	assert.Equal(t, []string{
		"22:00", "23:00", "00:00", "01:00", "02:00", "03:00", "04:00", "05:00",
	}, starts)
}

func TestGridOrder(t *testing.T) {
	g := Grid()

	for i, d := range domain.Week {
		day := g[i*SlotsPerDay : (i+1)*SlotsPerDay]
		assert.Equal(t, d, day[0].Day)
		assert.Equal(t, d, day[SlotsPerDay-1].Day)
		assert.Equal(t, domain.Night, day[SlotsPerDay-1].Period)
	}
}

func TestPeriodOf(t *testing.T) {
	tests := []struct {
		start   string
		want    domain.Period
		wantErr bool
	}{
		{start: "06:00", want: domain.Morning},
		{start: "11:00", want: domain.Morning},
		{start: "12:00", want: domain.Afternoon},
		{start: "17:00", want: domain.Afternoon},
		{start: "18:00", want: domain.Evening},
		{start: "21:00", want: domain.Evening},
		{start: "22:00", want: domain.Night},
		{start: "00:00", want: domain.Night},
		{start: "05:00", want: domain.Night},
		{start: "9am", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			got, err := PeriodOf(tt.start)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPeriodOfAgreesWithGrid(t *testing.T) {
	for _, s := range Grid() {
		p, err := PeriodOf(s.StartTime)
		require.NoError(t, err)
		assert.Equal(t, s.Period, p, s.Key().String())
	}
}

func TestSortSlots(t *testing.T) {
	slots := []domain.CourtSlot{
		{ID: 1, DayOfWeek: domain.Tuesday, StartTime: "06:00", EndTime: "07:00"},
		{ID: 2, DayOfWeek: domain.Monday, StartTime: "00:00", EndTime: "01:00"},
		{ID: 3, DayOfWeek: domain.Monday, StartTime: "09:30", EndTime: "10:30"},
		{ID: 4, DayOfWeek: domain.Monday, StartTime: "23:00", EndTime: "00:00"},
		{ID: 5, DayOfWeek: domain.Monday, StartTime: "08:00", EndTime: "09:00"},
	}

	SortSlots(slots)

	var ids []int64
	for _, s := range slots {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int64{5, 4, 2, 1, 3}, ids)
}

func TestNextOccurrenceScenario(t *testing.T) {
	now := time.Date(2024, 1, 3, 15, 30, 0, 0, time.UTC)

	got := NextOccurrence(domain.Monday, now)

	assert.Equal(t, time.Date(2024, 1, 8, 15, 30, 0, 0, time.UTC), got.Date)
	assert.Equal(t, "2024-01-08", got.ISOKey)
	assert.Equal(t, "Monday, Jan 8", got.LongLabel)
	assert.Equal(t, "Jan 8", got.ShortLabel)
}

func TestNextOccurrenceIsOneToSevenDaysAhead(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	for offset := 0; offset < 14; offset++ {
		now := start.AddDate(0, 0, offset)
		for _, d := range domain.Week {
			got := NextOccurrence(d, now)
			days := int(got.Date.Sub(now).Hours() / 24)

			assert.GreaterOrEqual(t, days, 1, "%s from %s", d, now.Format(domain.DateFormat))
			assert.LessOrEqual(t, days, 7, "%s from %s", d, now.Format(domain.DateFormat))
			assert.Equal(t, d, domain.WeekdayOf(got.Date))
		}
	}
}

func TestNextOccurrenceSameDayRollsAWeek(t *testing.T) {
	now := time.Date(2024, 1, 3, 8, 0, 0, 0, time.UTC)

	got := NextOccurrence(domain.Wednesday, now)

	assert.Equal(t, "2024-01-10", got.ISOKey)
}

func TestNextOccurrenceCyclesThroughWeek(t *testing.T) {
	now := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

	dates := map[string]domain.Weekday{}
	for _, d := range domain.Week {
		dates[NextOccurrence(d, now).ISOKey] = d
	}
	require.Len(t, dates, 7)
	for i := 1; i <= 7; i++ {
		day, ok := dates[now.AddDate(0, 0, i).Format(domain.DateFormat)]
		assert.True(t, ok, "day +%d not covered", i)
		assert.Equal(t, domain.WeekdayOf(now.AddDate(0, 0, i)), day)
	}

	deltas := map[int]bool{}
	for i := 0; i < 7; i++ {
		at := now.AddDate(0, 0, i)
		got := NextOccurrence(domain.Thursday, at)
		deltas[int(got.Date.Sub(at).Hours()/24)] = true
	}
	assert.Len(t, deltas, 7)
}

func TestNextOccurrenceYearRollover(t *testing.T) {
	now := time.Date(2024, 12, 30, 9, 0, 0, 0, time.UTC) // Monday

	got := NextOccurrence(domain.Sunday, now)

	assert.Equal(t, "2025-01-05", got.ISOKey)
	assert.Equal(t, "Sunday, Jan 5", got.LongLabel)
}

func TestNextOccurrenceKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	now := time.Date(2024, 1, 3, 23, 30, 0, 0, loc)

	got := NextOccurrence(domain.Thursday, now)

	assert.Equal(t, "2024-01-04", got.ISOKey)
	assert.Equal(t, loc, got.Date.Location())
}
