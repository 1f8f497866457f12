package schedule

import (
	"bytes"
	"errors"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"djangocon-ics/pkg/logger"
	"djangocon-ics/pkg/models"
)

const userAgent = "Mozilla/5.0 (compatible; djangocon-ics/1.0)"

// Scrape fetches the schedule page and extracts its events.
func Scrape(pageURL string, timeout time.Duration) ([]models.Event, *Stats, error) {
	body, err := FetchHTML(pageURL, timeout)
	if err != nil {
		return nil, nil, err
	}
	return Parse(bytes.NewReader(body))
}

// FetchHTML retrieves the schedule page body over HTTP.
func FetchHTML(pageURL string, timeout time.Duration) ([]byte, error) {
	c := colly.NewCollector(colly.UserAgent(userAgent))
	c.SetRequestTimeout(timeout)

	var body []byte
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	var failed error
	c.OnError(func(r *colly.Response, err error) {
		failed = err
	})

	logger.Named("fetcher").Debug().Str("url", pageURL).Msg("fetching schedule page")

	if err := c.Visit(pageURL); err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	if failed != nil {
		return nil, &FetchError{URL: pageURL, Err: failed}
	}
	if len(body) == 0 {
		return nil, &FetchError{URL: pageURL, Err: errors.New("empty response body")}
	}
	if !looksLikeHTML(body) {
		return nil, &FetchError{URL: pageURL, Err: errors.New("response is not an HTML document")}
	}

	return body, nil
}

// looksLikeHTML guards against the URL serving something other than the
// schedule page (a JSON error body, a feed redirect).
func looksLikeHTML(body []byte) bool {
	return strings.HasPrefix(string(bytes.TrimSpace(body)), "<")
}
