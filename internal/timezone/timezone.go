package timezone

import (
	"errors"
	"strings"
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Sao_Paulo"

// Accepted appointment layouts. RFC3339 carries its own offset; the others
// are read in the configured location.
var scheduledLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
}

var ErrInvalidScheduledAt = errors.New("invalid scheduled_at")

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if loc, err := time.LoadLocation(tz); tz != "" && err == nil {
		return loc
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// ParseScheduled reads an appointment time. Values without an offset are
// interpreted in tz.
func ParseScheduled(value, tz string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidScheduledAt
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	loc := Location(tz)
	for _, layout := range scheduledLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidScheduledAt
}
