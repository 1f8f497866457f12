package main

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"djangocon-ics/pkg/ics"
	"djangocon-ics/pkg/logger"
	"djangocon-ics/pkg/models"
	"djangocon-ics/pkg/schedule"
)

const defaultURL = "https://2025.djangocon.us/schedule/"

var (
	pageURL string
	outPath string
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "djangocon-ics",
	Short:         "Export the DjangoCon US 2025 schedule as an iCalendar file",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(pageURL, outPath, timeout)
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&pageURL, "url", defaultURL, "schedule page URL or local HTML file")
	flags.StringVar(&outPath, "out", "djangocon-2025.ics", "output .ics path")
	flags.DurationVar(&timeout, "timeout", 30*time.Second, "HTTP request timeout")
}

func run(source, out string, timeout time.Duration) error {
	events, _, err := loadEvents(source, timeout)
	if err != nil {
		return err
	}

	if err := ics.WriteFile(events, out); err != nil {
		return err
	}

	logger.Named("cli").Info().
		Int("events", len(events)).
		Str("path", out).
		Msg("calendar written")
	return nil
}

// loadEvents scrapes the page over HTTP, or parses a local HTML file when the
// source has no URL scheme.
func loadEvents(source string, timeout time.Duration) ([]models.Event, *schedule.Stats, error) {
	if strings.Contains(source, "://") {
		return schedule.Scrape(source, timeout)
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, nil, &schedule.FetchError{URL: source, Err: err}
	}
	defer f.Close()
	return schedule.Parse(f)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Get().Error().Err(err).Msg("export failed")
		os.Exit(1)
	}
}
