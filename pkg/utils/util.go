package utils

import (
	"fmt"
	"strings"
	"time"
)

// ParseISODate parses a calendar date ("2024-05-10") or a full RFC3339
// timestamp and returns midnight UTC of that calendar day.
func ParseISODate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if t, err := time.Parse(ISO_DATE_LAYOUT, value); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ISO date %q: %w", value, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// CalendarDaysBetween returns the number of calendar days from start to end.
// Negative when end is before start.
func CalendarDaysBetween(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours() / 24)
}

// FormatDisplayDate renders an ISO date as "Fri, May 10". Unparseable input is returned unchanged.
func FormatDisplayDate(value string) string {
	if value == "" {
		return ""
	}
	t, err := ParseISODate(value)
	if err != nil {
		return value
	}
	return t.Format(DISPLAY_DATE_LAYOUT)
}

// FormatSearchDate renders an ISO date as "10 may", used for external search links
func FormatSearchDate(value string) string {
	t, err := ParseISODate(value)
	if err != nil {
		return value
	}
	return strings.ToLower(t.Format(SEARCH_DATE_LAYOUT))
}

// NormalizeWeight makes sure a baggage weight carries its unit ("20" -> "20kg")
func NormalizeWeight(weight string) string {
	weight = strings.TrimSpace(weight)
	if weight == "" || strings.Contains(weight, WEIGHT_UNIT) {
		return weight
	}
	return weight + WEIGHT_UNIT
}
