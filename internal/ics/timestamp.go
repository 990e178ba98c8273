package ics

import (
	"fmt"
	"time"
)

// trelloTimeLayout is the exact shape of Trello's due/start fields:
// ISO-8601 with microseconds and a UTC offset ("Z" accepted for +00:00).
// Anything else is treated as an upstream contract change and rejected.
const trelloTimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// icsTimeLayout is the iCalendar UTC date-time form.
const icsTimeLayout = "20060102T150405Z"

// NormalizeTimestamp parses a Trello timestamp string and renders it as an
// iCalendar UTC date-time.
func NormalizeTimestamp(value string) (string, error) {
	t, err := parseTrelloTime(value)
	if err != nil {
		return "", err
	}

	return t.Format(icsTimeLayout), nil
}

// NormalizeStartTimestamp is NormalizeTimestamp with the time of day
// truncated to midnight after UTC conversion. Start dates mark UTC calendar
// days, not instants.
func NormalizeStartTimestamp(value string) (string, error) {
	t, err := parseTrelloTime(value)
	if err != nil {
		return "", err
	}
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	return midnight.Format(icsTimeLayout), nil
}

func parseTrelloTime(value string) (time.Time, error) {
	t, err := time.Parse(trelloTimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("unexpected timestamp %q from Trello: %w", value, err)
	}

	return t.UTC(), nil
}
