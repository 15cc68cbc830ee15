package domain

import (
	"fmt"
	"strings"
	"time"
)

// timestampLayout parses M/D/YYYY H:MM; the numeric month, day and hour
// verbs accept one or two digits.
const timestampLayout = "1/2/2006 15:04"

// FormatTimestamp renders t as M/D/YYYY H:MM without zero padding on month,
// day or hour. Go layouts always pad the 24-hour clock, so this is done by hand.
func FormatTimestamp(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d %d:%02d", int(t.Month()), t.Day(), t.Year(), t.Hour(), t.Minute())
}

// ParseTimestamp is the inverse of FormatTimestamp, interpreting the value in loc.
func ParseTimestamp(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(timestampLayout, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return t, nil
}
