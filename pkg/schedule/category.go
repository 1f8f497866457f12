package schedule

import (
	"strings"

	"djangocon-ics/pkg/models"
)

// categorize derives the event category from the day label and session title.
// Meal and break keywords win over the sprint-day default so that "Lunch" on a
// sprint day stays a meal.
func categorize(dayLabel, title string) models.Category {
	t := strings.ToLower(title)
	switch {
	case containsAny(t, "breakfast", "lunch", "dinner"):
		return models.CategoryMeal
	case strings.Contains(t, "break"):
		return models.CategoryBreak
	case strings.Contains(t, "keynote"):
		return models.CategoryKeynote
	case strings.HasPrefix(dayLabel, "Sprints"):
		return models.CategorySprint
	case containsAny(t, "registration", "opening", "closing", "lightning"):
		return models.CategorySpecial
	}
	return models.CategoryTalk
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
