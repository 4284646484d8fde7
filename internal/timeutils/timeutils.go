// Package timeutils converts caller-supplied local calendar dates into the
// UTC instants the YouTube Data API expects, and back again for display.
package timeutils

import (
	"errors"
	"fmt"
	"time"
)

const (
	DATE_LAYOUT          = "2006-01-02"
	UTC_INSTANT_LAYOUT   = "2006-01-02T15:04:05Z"
	LOCAL_INSTANT_LAYOUT = "2006-01-02T15:04:05"
)

var (
	ErrInvalidDate     = errors.New("invalid calendar date")
	ErrInvalidTimezone = errors.New("unresolvable timezone")
)

// ResolveTimezone looks up name in the host timezone database. An empty
// name resolves to the host local zone.
func ResolveTimezone(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	return loc, nil
}

// ParseLocalDate interprets a YYYY-MM-DD string as midnight in loc.
func ParseLocalDate(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DATE_LAYOUT, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return t, nil
}

// FormatUTCInstant renders t in the instant format the search endpoint
// requires for publishedAfter/publishedBefore.
func FormatUTCInstant(t time.Time) string {
	return t.UTC().Format(UTC_INSTANT_LAYOUT)
}

// LocalToUTC converts a local calendar date (midnight in loc) to a UTC
// instant string.
func LocalToUTC(localDate string, loc *time.Location) (string, error) {
	t, err := ParseLocalDate(localDate, loc)
	if err != nil {
		return "", err
	}
	return FormatUTCInstant(t), nil
}

// UTCToLocal is the inverse direction, kept for debugging output. It is not
// on the request path.
func UTCToLocal(utcInstant string, loc *time.Location) (string, error) {
	t, err := time.Parse(UTC_INSTANT_LAYOUT, utcInstant)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, utcInstant)
	}
	return t.In(loc).Format(LOCAL_INSTANT_LAYOUT), nil
}
