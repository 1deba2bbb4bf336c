// Package slotgrid holds the weekly slot model shared by the facility,
// schedule and booking flows: the canonical one-hour grid, weekday
// projection onto calendar dates and the edit-mode reconciliation of a
// court's stored slots against the grid.
package slotgrid

import (
	"fmt"
	"sort"
	"time"

	"github.com/kirinyoku/courtbook/internal/domain"
)

// Slot is one canonical one-hour window. Equality is structural.
type Slot struct {
	Day       domain.Weekday `json:"day"`
	Period    domain.Period  `json:"period"`
	StartTime string         `json:"start_time"`
	EndTime   string         `json:"end_time"`
}

func (s Slot) Key() Key {
	return Key{Day: s.Day, StartTime: s.StartTime, EndTime: s.EndTime}
}

// Key identifies a slot within a court's week.
type Key struct {
	Day       domain.Weekday `json:"day"`
	StartTime string         `json:"start_time"`
	EndTime   string         `json:"end_time"`
}

func (k Key) String() string {
	return fmt.Sprintf("%s %s-%s", k.Day, k.StartTime, k.EndTime)
}

func KeyOf(s domain.CourtSlot) Key {
	return Key{Day: s.DayOfWeek, StartTime: s.StartTime, EndTime: s.EndTime}
}

type window struct {
	period    domain.Period
	startHour int
	hours     int
}

var windows = [...]window{
	{period: domain.Morning, startHour: 6, hours: 6},
	{period: domain.Afternoon, startHour: 12, hours: 6},
	{period: domain.Evening, startHour: 18, hours: 4},
	{period: domain.Night, startHour: 22, hours: 8},
}

const SlotsPerDay = 24

var (
	grid      = buildGrid()
	gridIndex = indexGrid(grid)
)

func buildGrid() []Slot {
	out := make([]Slot, 0, len(domain.Week)*SlotsPerDay)
	for _, d := range domain.Week {
		out = append(out, forDay(d)...)
	}
	return out
}

func indexGrid(g []Slot) map[Key]int {
	idx := make(map[Key]int, len(g))
	for i, s := range g {
		idx[s.Key()] = i
	}
	return idx
}

func forDay(day domain.Weekday) []Slot {
	out := make([]Slot, 0, SlotsPerDay)
	for _, w := range windows {
		for i := 0; i < w.hours; i++ {
			h := (w.startHour + i) % 24
			out = append(out, Slot{
				Day:       day,
				Period:    w.period,
				StartTime: clock(h),
				EndTime:   clock((h + 1) % 24),
			})
		}
	}
	return out
}

func clock(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// Grid returns the canonical slots of the whole week, SlotsPerDay per day,
// ordered by day, period and clock order within the period.
func Grid() []Slot {
	out := make([]Slot, len(grid))
	copy(out, grid)
	return out
}

// ForDay returns the 24 canonical slots of day, or nil for an unknown day.
func ForDay(day domain.Weekday) []Slot {
	if !day.Valid() {
		return nil
	}
	return forDay(day)
}

// Lookup returns the canonical slot for k.
func Lookup(k Key) (Slot, bool) {
	i, ok := gridIndex[k]
	if !ok {
		return Slot{}, false
	}
	return grid[i], true
}

// PeriodOf derives the period from an "HH:MM" start time.
func PeriodOf(startTime string) (domain.Period, error) {
	t, err := time.Parse(domain.TimeFormat, startTime)
	if err != nil {
		return "", fmt.Errorf("slotgrid.PeriodOf:%w", err)
	}

	switch h := t.Hour(); {
	case h >= 12 && h < 18:
		return domain.Afternoon, nil
	case h >= 18 && h < 22:
		return domain.Evening, nil
	case h >= 22 || h < 6:
		return domain.Night, nil
	default:
		return domain.Morning, nil
	}
}

// SortSlots orders persisted slots by their canonical position. Slots that
// match no canonical window go last, by day then start time.
func SortSlots(slots []domain.CourtSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		pi, oki := gridIndex[KeyOf(slots[i])]
		pj, okj := gridIndex[KeyOf(slots[j])]
		switch {
		case oki && okj:
			return pi < pj
		case oki != okj:
			return oki
		}
		if di, dj := slots[i].DayOfWeek.Index(), slots[j].DayOfWeek.Index(); di != dj {
			return di < dj
		}
		return slots[i].StartTime < slots[j].StartTime
	})
}
