// scraper/freshness_checker.go
package scraper

import (
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Regex to find the site's update marker, e.g. "Last updated: 26 May 2025".
var lastUpdatedRegex = regexp.MustCompile(`(?i)last updated:?\s+(\d{1,2}\s+\w+\s+\d{4})`)

const lastUpdatedLayout = "2 January 2006"

// GetSourceLastUpdated scrapes pageURL and extracts the date the AWSD was
// last updated. containerSelector narrows the search to one page region;
// when it matches nothing the whole body text is searched as a fallback.
// Callers treat failures here as advisory only.
func GetSourceLastUpdated(pageURL, containerSelector string) (time.Time, error) {
	log.Printf("Scraper: Checking source freshness from %s (container: '%s')\n", pageURL, containerSelector)

	client := http.Client{Timeout: 20 * time.Second}
	res, err := client.Get(pageURL)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get URL %s: %w", pageURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return time.Time{}, fmt.Errorf("failed to get URL %s: status code %d", pageURL, res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse HTML from %s: %w", pageURL, err)
	}

	text := strings.TrimSpace(doc.Find(containerSelector).Text())
	if text == "" {
		text = strings.TrimSpace(doc.Find("body").Text())
	}

	matches := lastUpdatedRegex.FindStringSubmatch(text)
	if len(matches) < 2 {
		return time.Time{}, fmt.Errorf("could not find 'Last updated' marker on %s", pageURL)
	}

	updated, err := time.Parse(lastUpdatedLayout, matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse 'Last updated' date %q: %w", matches[1], err)
	}
	return updated, nil
}
