package schedule

import (
	"io"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"djangocon-ics/pkg/logger"
	"djangocon-ics/pkg/models"
)

// dayHeaderRE matches day headers like "Talks: Day 1 / Monday, Sep 8",
// capturing the label and the date text.
var dayHeaderRE = regexp.MustCompile(`^\s*(Talks: .*?|Sprints: .*?)\s*/\s*(.+)$`)

var whitespaceRE = regexp.MustCompile(`\s+`)

// Stats counts what the parser saw and what it had to drop.
type Stats struct {
	Days             int
	TimeBlocks       int
	Sessions         int
	SkippedNoTime    int
	SkippedNoTitle   int
	SkippedBadRange  int
	SkippedDuplicate int
}

// Skipped returns the total number of session cards dropped.
func (s *Stats) Skipped() int {
	return s.SkippedNoTime + s.SkippedNoTitle + s.SkippedBadRange + s.SkippedDuplicate
}

func (s *Stats) logSummary(included int) {
	log := logger.Named("parser")
	log.Info().
		Int("days", s.Days).
		Int("time_blocks", s.TimeBlocks).
		Int("sessions", s.Sessions).
		Int("included", included).
		Int("skipped", s.Skipped()).
		Msg("schedule parsed")
	if s.Skipped() > 0 {
		log.Warn().
			Int("missing_time", s.SkippedNoTime).
			Int("missing_title", s.SkippedNoTitle).
			Int("bad_range", s.SkippedBadRange).
			Int("duplicates", s.SkippedDuplicate).
			Msg("dropped malformed or duplicate entries")
	}
}

// Parse extracts events from schedule page HTML. Malformed individual entries
// are skipped and counted in Stats; a document with no recognizable day
// sections fails with a ParseError.
func Parse(r io.Reader) ([]models.Event, *Stats, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, nil, &ParseError{Reason: err.Error()}
	}

	stats := &Stats{}
	var events []models.Event

	doc.Find("h2").Each(func(_ int, h2 *goquery.Selection) {
		events = append(events, parseDay(h2, stats)...)
	})

	if stats.Days == 0 {
		return nil, stats, &ParseError{Reason: "no schedule day sections found"}
	}

	events = normalize(events, stats)
	stats.logSummary(len(events))
	return events, stats, nil
}

// parseDay extracts all events under one day header. Headers that are not day
// headers (navigation, page title) are ignored without counting.
func parseDay(h2 *goquery.Selection, stats *Stats) []models.Event {
	link := h2.Find("a").First()
	if link.Length() == 0 {
		return nil
	}

	headerText := cleanText(link.Text())
	if headerText == "" || strings.Contains(headerText, "Schedule") {
		return nil
	}

	m := dayHeaderRE.FindStringSubmatch(headerText)
	if m == nil {
		return nil
	}
	dayLabel := strings.TrimSpace(m[1])

	day, err := parseDayDate(strings.TrimSpace(m[2]))
	if err != nil {
		logger.Named("parser").Warn().Str("header", headerText).Err(err).
			Msg("day header date did not parse")
		return nil
	}

	container := h2.ParentsFiltered("div.relative").First()
	if container.Length() == 0 {
		logger.Named("parser").Warn().Str("header", headerText).
			Msg("day container not found")
		return nil
	}

	stats.Days++

	var events []models.Event
	container.Find("div.flex.flex-wrap.gap-4").Each(func(_ int, block *goquery.Selection) {
		events = append(events, parseTimeBlock(block, dayLabel, day, stats)...)
	})
	return events
}

// parseTimeBlock extracts the session cards sharing one time slot. The slot's
// h3 must carry exactly two <time datetime> elements; otherwise every card in
// the slot is skipped and counted.
func parseTimeBlock(block *goquery.Selection, dayLabel string, day time.Time, stats *Stats) []models.Event {
	stats.TimeBlocks++
	cards := block.Find("section")

	times := block.Find("h3").First().Find("time")
	if times.Length() != 2 {
		stats.Sessions += cards.Length()
		stats.SkippedNoTime += cards.Length()
		logger.Named("parser").Warn().
			Str("day", dayLabel).
			Int("times", times.Length()).
			Int("cards", cards.Length()).
			Msg("time slot without a start/end pair")
		return nil
	}

	start, startErr := parseEventTime(times.Eq(0).AttrOr("datetime", ""), day)
	end, endErr := parseEventTime(times.Eq(1).AttrOr("datetime", ""), day)
	if startErr != nil || endErr != nil {
		stats.Sessions += cards.Length()
		stats.SkippedNoTime += cards.Length()
		logger.Named("parser").Warn().
			Str("day", dayLabel).
			AnErr("start", startErr).
			AnErr("end", endErr).
			Msg("time slot did not parse")
		return nil
	}

	var events []models.Event
	cards.Each(func(_ int, card *goquery.Selection) {
		stats.Sessions++
		ev, ok := parseSessionCard(card, dayLabel, start, end)
		if !ok {
			stats.SkippedNoTitle++
			logger.Named("parser").Warn().Str("day", dayLabel).
				Msg("session card without a title")
			return
		}
		events = append(events, ev)
	})
	return events
}

func parseSessionCard(card *goquery.Selection, dayLabel string, start, end time.Time) (models.Event, bool) {
	title := cleanText(card.Find("h4 a").First().Text())
	if title == "" {
		title = cleanText(card.Find("h4").First().Text())
	}
	if title == "" {
		return models.Event{}, false
	}

	room := cleanText(card.Find("p.text-sm").First().Text())

	var presenters []string
	card.Find("div.pt-6.mt-auto h6").Each(func(_ int, name *goquery.Selection) {
		if n := cleanText(name.Text()); n != "" {
			presenters = append(presenters, n)
		}
	})

	// The audience badge saying "All" carries no information
	audience := cleanText(card.Find("span.bg-black").First().Text())
	if audience == "All" {
		audience = ""
	}

	return models.Event{
		Title:         title,
		StartTime:     start,
		EndTime:       end,
		Location:      room,
		Presenters:    presenters,
		AudienceLevel: audience,
		Category:      categorize(dayLabel, title),
	}, true
}

// normalize sorts events chronologically and drops inverted ranges and
// duplicates, keyed by title + start time.
func normalize(events []models.Event, stats *Stats) []models.Event {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})

	seen := make(map[string]bool)
	out := events[:0]
	for _, ev := range events {
		if ev.EndTime.Before(ev.StartTime) {
			stats.SkippedBadRange++
			logger.Named("parser").Warn().Str("title", ev.Title).
				Time("start", ev.StartTime).Time("end", ev.EndTime).
				Msg("event ends before it starts")
			continue
		}
		key := ev.Title + "|" + ev.StartTime.Format(time.RFC3339)
		if seen[key] {
			stats.SkippedDuplicate++
			logger.Named("parser").Warn().Str("title", ev.Title).
				Msg("duplicate event dropped")
			continue
		}
		seen[key] = true
		out = append(out, ev)
	}
	return out
}

func cleanText(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}
