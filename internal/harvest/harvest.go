// Package harvest fills slot candidate lists by scraping values from
// seed web pages.
package harvest

import (
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dialogkit/slotmat/internal/textutil"
)

// Seed names one page to scrape: the slot whose candidate values live
// there, a selector for the value elements, optionally an attribute to
// read instead of element text, and an optional pagination selector.
type Seed struct {
	URL      string `json:"url"`
	Slot     string `json:"slot"`
	Selector string `json:"selector"`
	Attr     string `json:"attr,omitempty"`
	Next     string `json:"next,omitempty"`
	MaxPages int    `json:"max_pages,omitempty"`
}

// Values maps slot names to their harvested candidate values, sorted
// and deduplicated.
type Values map[string][]string

// Add merges more values into the set for one slot.
func (v Values) Add(slot string, values []string) {
	seen := make(map[string]bool, len(v[slot]))
	for _, val := range v[slot] {
		seen[val] = true
	}
	for _, val := range values {
		if val != "" && !seen[val] {
			seen[val] = true
			v[slot] = append(v[slot], val)
		}
	}
	sort.Strings(v[slot])
}

// ExtractValues pulls the seed's values out of one page. Element text
// (or the named attribute) is whitespace collapsed and lowercased;
// empty results and duplicates are dropped, order follows the document.
func ExtractValues(htmlStr string, seed Seed) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, err
	}

	var values []string
	seen := make(map[string]bool)
	doc.Find(seed.Selector).Each(func(_ int, s *goquery.Selection) {
		raw := s.Text()
		if seed.Attr != "" {
			raw, _ = s.Attr(seed.Attr)
		}
		val := textutil.NormalizeValue(raw)
		if val == "" || seen[val] {
			return
		}
		seen[val] = true
		values = append(values, val)
	})
	return values, nil
}

// NextPageURL resolves the page's pagination link against its own URL.
// An empty string means the trail ends here.
func NextPageURL(htmlStr, pageURL, selector string) (string, error) {
	if selector == "" {
		return "", nil
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return "", err
	}

	href, exists := doc.Find(selector).First().Attr("href")
	if !exists || href == "" || strings.HasPrefix(href, "#") {
		return "", nil
	}
	u, err := url.Parse(href)
	if err != nil {
		return "", nil
	}
	return base.ResolveReference(u).String(), nil
}

type harvestOpts struct {
	userAgent string
	maxPages  int
	wait      *politeness
}

// harvestSeed walks a seed's page trail and accumulates its values.
func harvestSeed(client httpClient, seed Seed, values Values, opts harvestOpts) (int, error) {
	maxPages := seed.MaxPages
	if maxPages <= 0 {
		maxPages = opts.maxPages
	}

	visited := make(map[string]bool)
	pageURL := seed.URL
	pages := 0

	for pageURL != "" && pages < maxPages {
		if visited[pageURL] {
			break
		}
		visited[pageURL] = true

		opts.wait.Wait(pageURL)

		html, status, err := fetchHTML(client, pageURL, opts.userAgent)
		if err != nil {
			return pages, err
		}
		if status >= 400 {
			return pages, fmt.Errorf("HTTP %d", status)
		}

		pageValues, err := ExtractValues(html, seed)
		if err != nil {
			return pages, err
		}
		values.Add(seed.Slot, pageValues)
		pages++
		slog.Debug("Harvested page", "url", pageURL, "slot", seed.Slot, "values", len(pageValues))

		next, err := NextPageURL(html, pageURL, seed.Next)
		if err != nil {
			slog.Debug("Bad pagination link", "url", pageURL, "error", err)
			break
		}
		pageURL = next
	}

	return pages, nil
}
