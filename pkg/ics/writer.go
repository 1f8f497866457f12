// Package ics serializes schedule events into an iCalendar file.
package ics

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"djangocon-ics/pkg/models"
)

const (
	productID = "-//DjangoCon US//Schedule Export//EN"
	uidDomain = "djangocon-2025"
)

// WriteError reports a failure to produce the output file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write %s: %v", e.Path, e.Err) }

func (e *WriteError) Unwrap() error { return e.Err }

// BuildCalendar assembles a VCALENDAR with one VEVENT per input event,
// preserving input order.
func BuildCalendar(events []models.Event) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	cal.Props.SetText(ical.PropMethod, "PUBLISH")

	for _, ev := range events {
		vevent := ical.NewEvent()
		vevent.Props.SetText(ical.PropUID, eventUID(ev))
		// DTSTAMP derives from the event itself so re-runs on unchanged
		// source stay byte-identical.
		vevent.Props.SetDateTime(ical.PropDateTimeStamp, ev.StartTime.UTC())
		vevent.Props.SetDateTime(ical.PropDateTimeStart, ev.StartTime.UTC())
		vevent.Props.SetDateTime(ical.PropDateTimeEnd, ev.EndTime.UTC())
		vevent.Props.SetText(ical.PropSummary, ev.Title)
		if ev.Location != "" {
			vevent.Props.SetText(ical.PropLocation, ev.Location)
		}
		if desc := ev.Description(); desc != "" {
			vevent.Props.SetText(ical.PropDescription, desc)
		}
		if ev.Category != "" {
			vevent.Props.SetText(ical.PropCategories, string(ev.Category))
		}
		cal.Children = append(cal.Children, vevent.Component)
	}

	return cal
}

// eventUID derives a stable identifier from the event content, so unchanged
// source data produces an unchanged calendar.
func eventUID(ev models.Event) string {
	seed := ev.Title + "|" + ev.StartTime.UTC().Format(time.RFC3339)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed)).String() + "@" + uidDomain
}

// Encode serializes the calendar for the given events.
func Encode(events []models.Event) ([]byte, error) {
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(BuildCalendar(events)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes the calendar for events to path. The write is atomic from
// the caller's perspective: the target either ends up complete or is left
// untouched, with no partial file on failure.
func WriteFile(events []models.Event, path string) error {
	data, err := Encode(events)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return &WriteError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &WriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
