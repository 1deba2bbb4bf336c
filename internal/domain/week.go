package domain

import (
	"fmt"
	"strings"
	"time"
)

type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Week lists the days in display order.
var Week = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func ParseWeekday(s string) (Weekday, error) {
	for _, d := range Week {
		if strings.EqualFold(string(d), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown weekday %q", s)
}

// Index returns the position of d in Week, or -1.
func (d Weekday) Index() int {
	for i, w := range Week {
		if w == d {
			return i
		}
	}
	return -1
}

func (d Weekday) Valid() bool { return d.Index() >= 0 }

func (d Weekday) TimeWeekday() time.Weekday {
	return time.Weekday((d.Index() + 1) % 7)
}

func WeekdayOf(t time.Time) Weekday {
	return Week[(int(t.Weekday())+6)%7]
}

type Period string

const (
	Morning   Period = "Morning"
	Afternoon Period = "Afternoon"
	Evening   Period = "Evening"
	Night     Period = "Night"
)

var Periods = [4]Period{Morning, Afternoon, Evening, Night}
