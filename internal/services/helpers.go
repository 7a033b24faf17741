package services

import (
	"fmt"
	"math"
	"time"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// parseMonth parses a "YYYY-MM" report bound. from selects the first
// instant of the month; otherwise the last instant, so an inclusive "to"
// covers the whole calendar month.
func parseMonth(val string, from bool) (*time.Time, error) {
	if val == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01", val)
	if err != nil {
		return nil, fmt.Errorf("%w: month must be YYYY-MM, got %q", ErrValidation, val)
	}
	if from {
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		return &start, nil
	}
	end := time.Date(t.Year(), t.Month()+1, 0, 23, 59, 59, 999000000, time.UTC)
	return &end, nil
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}
