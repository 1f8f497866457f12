package schedule

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"djangocon-ics/pkg/models"
)

func parseFixture(t *testing.T) ([]models.Event, *Stats) {
	t.Helper()

	f, err := os.Open("testdata/schedule.html")
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()

	events, stats, err := Parse(f)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return events, stats
}

func TestParse_FixtureCounts(t *testing.T) {
	t.Parallel()

	events, stats := parseFixture(t)

	if len(events) != 6 {
		t.Fatalf("len(events) = %d, want 6", len(events))
	}
	if stats.Days != 2 {
		t.Fatalf("stats.Days = %d, want 2", stats.Days)
	}
	if stats.TimeBlocks != 6 {
		t.Fatalf("stats.TimeBlocks = %d, want 6", stats.TimeBlocks)
	}
	if stats.Sessions != 7 {
		t.Fatalf("stats.Sessions = %d, want 7", stats.Sessions)
	}
	if stats.SkippedNoTime != 1 {
		t.Fatalf("stats.SkippedNoTime = %d, want 1 (the missing-time session)", stats.SkippedNoTime)
	}
	if stats.Skipped() != 1 {
		t.Fatalf("stats.Skipped() = %d, want 1", stats.Skipped())
	}

	for _, ev := range events {
		if ev.Title == "Mystery Session" {
			t.Fatalf("missing-time session was emitted")
		}
	}
}

func TestParse_EventFields(t *testing.T) {
	t.Parallel()

	events, _ := parseFixture(t)

	keynote := events[0]
	if keynote.Title != "Keynote: The State of Django" {
		t.Fatalf("first event title = %q", keynote.Title)
	}
	wantStart := time.Date(2025, time.September, 8, 14, 0, 0, 0, time.UTC)
	if !keynote.StartTime.Equal(wantStart) {
		t.Fatalf("keynote start = %v, want %v", keynote.StartTime, wantStart)
	}
	wantEnd := time.Date(2025, time.September, 8, 14, 50, 0, 0, time.UTC)
	if !keynote.EndTime.Equal(wantEnd) {
		t.Fatalf("keynote end = %v, want %v", keynote.EndTime, wantEnd)
	}
	if keynote.Location != "Grand Ballroom" {
		t.Fatalf("keynote location = %q", keynote.Location)
	}
	if len(keynote.Presenters) != 1 || keynote.Presenters[0] != "Ada Lovelace" {
		t.Fatalf("keynote presenters = %v", keynote.Presenters)
	}
	if keynote.Category != models.CategoryKeynote {
		t.Fatalf("keynote category = %q", keynote.Category)
	}

	byTitle := make(map[string]models.Event)
	for _, ev := range events {
		byTitle[ev.Title] = ev
	}

	async, ok := byTitle["Async Django in Production"]
	if !ok {
		t.Fatalf("async talk not found in %v", events)
	}
	if async.AudienceLevel != "Intermediate" {
		t.Fatalf("async audience = %q, want Intermediate", async.AudienceLevel)
	}
	if len(async.Presenters) != 2 {
		t.Fatalf("async presenters = %v, want 2 names", async.Presenters)
	}
	if async.Category != models.CategoryTalk {
		t.Fatalf("async category = %q", async.Category)
	}

	orm := byTitle["ORM Internals"]
	if orm.AudienceLevel != "" {
		t.Fatalf(`"All" audience badge should be dropped, got %q`, orm.AudienceLevel)
	}

	if byTitle["Morning Break"].Category != models.CategoryBreak {
		t.Fatalf("break category = %q", byTitle["Morning Break"].Category)
	}
	if byTitle["Morning Sprints"].Category != models.CategorySprint {
		t.Fatalf("sprint category = %q", byTitle["Morning Sprints"].Category)
	}
	if byTitle["Sprint Lunch"].Category != models.CategoryMeal {
		t.Fatalf("sprint-day lunch category = %q, want meal", byTitle["Sprint Lunch"].Category)
	}
}

func TestParse_ChronologicalUTC(t *testing.T) {
	t.Parallel()

	events, _ := parseFixture(t)

	for i, ev := range events {
		if ev.StartTime.Location() != time.UTC || ev.EndTime.Location() != time.UTC {
			t.Fatalf("event %q times not UTC: %v / %v", ev.Title, ev.StartTime, ev.EndTime)
		}
		if ev.EndTime.Before(ev.StartTime) {
			t.Fatalf("event %q ends before it starts", ev.Title)
		}
		if i > 0 && ev.StartTime.Before(events[i-1].StartTime) {
			t.Fatalf("events out of order at %d: %v after %v", i, ev.StartTime, events[i-1].StartTime)
		}
	}
}

func TestParse_NotASchedulePage(t *testing.T) {
	t.Parallel()

	_, _, err := Parse(strings.NewReader("<html><body><p>nothing here</p></body></html>"))

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Parse() error = %v, want *ParseError", err)
	}
}

func TestParse_DuplicateCardsDropped(t *testing.T) {
	t.Parallel()

	const page = `<div class="relative">
		<h2><a href="#d">Talks: Day 1 / Monday, Sep 8</a></h2>
		<div class="flex flex-wrap gap-4">
			<h3>
				<time datetime="2025-09-08T09:00:00-05:00"></time>
				<time datetime="2025-09-08T09:30:00-05:00"></time>
			</h3>
			<section><h4>Repeated Session</h4></section>
			<section><h4>Repeated Session</h4></section>
		</div>
	</div>`

	events, stats, err := Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if stats.SkippedDuplicate != 1 {
		t.Fatalf("stats.SkippedDuplicate = %d, want 1", stats.SkippedDuplicate)
	}
}

func TestParse_InvertedRangeDropped(t *testing.T) {
	t.Parallel()

	const page = `<div class="relative">
		<h2><a href="#d">Talks: Day 1 / Monday, Sep 8</a></h2>
		<div class="flex flex-wrap gap-4">
			<h3>
				<time datetime="2025-09-08T10:00:00-05:00"></time>
				<time datetime="2025-09-08T09:00:00-05:00"></time>
			</h3>
			<section><h4>Backwards Session</h4></section>
		</div>
	</div>`

	events, stats, err := Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("len(events) = %d, want 0", len(events))
	}
	if stats.SkippedBadRange != 1 {
		t.Fatalf("stats.SkippedBadRange = %d, want 1", stats.SkippedBadRange)
	}
}

func TestCategorize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dayLabel string
		title    string
		want     models.Category
	}{
		{"Talks: Day 1", "Building APIs with DRF", models.CategoryTalk},
		{"Talks: Day 1", "Keynote: Why Django", models.CategoryKeynote},
		{"Talks: Day 2", "Afternoon Break", models.CategoryBreak},
		{"Talks: Day 2", "Breakfast", models.CategoryMeal},
		{"Talks: Day 3", "Lunch", models.CategoryMeal},
		{"Talks: Day 1", "Registration & Badge Pickup", models.CategorySpecial},
		{"Talks: Day 3", "Lightning Talks", models.CategorySpecial},
		{"Sprints: Day 1", "Morning Sprints", models.CategorySprint},
		{"Sprints: Day 2", "Lunch", models.CategoryMeal},
	}

	for _, tt := range tests {
		if got := categorize(tt.dayLabel, tt.title); got != tt.want {
			t.Errorf("categorize(%q, %q) = %q, want %q", tt.dayLabel, tt.title, got, tt.want)
		}
	}
}
