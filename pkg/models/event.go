package models

import (
	"strings"
	"time"
)

// Category classifies a schedule entry by how the page labels it.
type Category string

const (
	CategoryTalk    Category = "talk"
	CategoryKeynote Category = "keynote"
	CategoryBreak   Category = "break"
	CategoryMeal    Category = "meal"
	CategorySpecial Category = "special"
	CategorySprint  Category = "sprint"
)

// Event represents one scheduled conference session
type Event struct {
	Title         string    // Session title
	StartTime     time.Time // Start, normalized to UTC
	EndTime       time.Time // End, normalized to UTC
	Location      string    // Room/track label, may be empty
	Presenters    []string  // Presenter names in page order
	AudienceLevel string    // Audience badge text, empty when the page says "All"
	Category      Category  // Derived from page labeling
}

// Description renders the calendar description body for the event.
func (e Event) Description() string {
	var parts []string
	if len(e.Presenters) > 0 {
		parts = append(parts, "Presented by: "+strings.Join(e.Presenters, ", "))
	}
	if e.AudienceLevel != "" {
		parts = append(parts, "Audience level: "+e.AudienceLevel)
	}
	if e.Location != "" {
		parts = append(parts, "Location: "+e.Location)
	}
	return strings.Join(parts, "\n")
}
