package model

import (
	"fmt"
	"time"
)

// Horizon is the inclusive date range a dataset covers. Generators sample
// dates inside it and the ledger reports month-end balances across it.
type Horizon struct {
	Start time.Time
	End   time.Time
}

// NewHorizon truncates start and end to UTC dates and checks their order.
func NewHorizon(start, end time.Time) (Horizon, error) {
	h := Horizon{Start: Day(start), End: Day(end)}
	if start.IsZero() || end.IsZero() {
		return Horizon{}, fmt.Errorf("horizon: start and end dates are required")
	}
	if h.End.Before(h.Start) {
		return Horizon{}, fmt.Errorf("horizon: end %s is before start %s",
			h.End.Format(time.DateOnly), h.Start.Format(time.DateOnly))
	}
	return h, nil
}

// Contains reports whether t falls on a day inside the horizon.
func (h Horizon) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(h.Start) && !d.After(h.End)
}

// Days returns the number of days in the horizon, counting both ends.
func (h Horizon) Days() int {
	return int(h.End.Sub(h.Start).Hours()/24) + 1
}

// Years returns every calendar year the horizon touches.
func (h Horizon) Years() []int {
	var years []int
	for y := h.Start.Year(); y <= h.End.Year(); y++ {
		years = append(years, y)
	}
	return years
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
