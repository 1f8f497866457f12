package schedule

import (
	"fmt"
	"time"
)

// ConferenceTimezone is the IANA zone the schedule page states its times in.
const ConferenceTimezone = "America/Chicago"

// ConferenceYear anchors day headers, which omit the year.
const ConferenceYear = 2025

var conferenceLocation = mustLoadLocation(ConferenceTimezone)

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("load timezone %s: %v", name, err))
	}
	return loc
}

// parseDateTime attempts to parse a datetime attribute value with multiple
// strategies. Values without an offset are interpreted in the conference
// timezone. The result is always UTC.
func parseDateTime(value string) (time.Time, error) {
	absolute := []string{
		time.RFC3339,                      // 2025-09-08T09:00:00-05:00
		"2006-01-02T15:04:05.999Z07:00",   // RFC3339 with fractional seconds
		"20060102T150405Z",                // Basic UTC format
	}
	for _, format := range absolute {
		if t, err := time.Parse(format, value); err == nil {
			return t.UTC(), nil
		}
	}

	local := []string{
		"2006-01-02T15:04:05", // ISO 8601 without offset
		"2006-01-02T15:04",
		"20060102T150405", // Basic format: YYYYMMDDTHHMMSS
	}
	for _, format := range local {
		if t, err := time.ParseInLocation(format, value, conferenceLocation); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse datetime value: %q", value)
}

// parseEventTime parses a time slot boundary. Clock-only values fall back to
// the day the enclosing header was parsed from.
func parseEventTime(value string, day time.Time) (time.Time, error) {
	if t, err := parseDateTime(value); err == nil {
		return t, nil
	}

	clock := []string{"15:04:05", "15:04", "3:04 PM", "3:04PM"}
	for _, format := range clock {
		if t, err := time.Parse(format, value); err == nil {
			local := time.Date(day.Year(), day.Month(), day.Day(),
				t.Hour(), t.Minute(), t.Second(), 0, conferenceLocation)
			return local.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse time value: %q", value)
}

// parseDayDate parses a day header date like "Monday, Sep 8", attaching the
// conference year. The result stays in the conference timezone at midnight.
func parseDayDate(text string) (time.Time, error) {
	candidate := fmt.Sprintf("%s %d", text, ConferenceYear)
	formats := []string{
		"Monday, Jan 2 2006",
		"Monday, January 2 2006",
		"Jan 2 2006",
	}
	for _, format := range formats {
		if t, err := time.ParseInLocation(format, candidate, conferenceLocation); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse day date: %q", text)
}
