package harvest

import (
	"bufio"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// httpClient is the interface used for HTTP requests (allows testing).
type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func newHTTPClient(timeoutSec int) *http.Client {
	return &http.Client{
		Timeout: time.Duration(timeoutSec) * time.Second,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}
}

func fetchHTML(client httpClient, rawURL, userAgent string) (string, int, error) {
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	body := make([]byte, 0, 1024*1024)
	buf := make([]byte, 32*1024)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			body = append(body, buf[:n]...)
			if len(body) > 5*1024*1024 {
				break
			}
		}
		if err != nil {
			break
		}
	}

	return string(body), resp.StatusCode, nil
}

func loadSeeds(path string) ([]Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var seeds []Seed
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var s Seed
		if err := json.Unmarshal([]byte(line), &s); err != nil {
			slog.Warn("Skipping invalid seed line", "line", line, "error", err)
			continue
		}
		if s.URL == "" || s.Slot == "" || s.Selector == "" {
			slog.Warn("Skipping incomplete seed", "line", line)
			continue
		}
		seeds = append(seeds, s)
	}
	return seeds, scanner.Err()
}

func loadValues(path string) (Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(Values), nil
		}
		return nil, err
	}
	var values Values
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func saveValues(path string, values Values) error {
	data, err := json.MarshalIndent(values, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// politeness spaces out requests per registered domain so a seed list
// hitting one site does not hammer it.
type politeness struct {
	delay   time.Duration
	lastHit map[string]time.Time
}

func newPoliteness(delay time.Duration) *politeness {
	return &politeness{delay: delay, lastHit: make(map[string]time.Time)}
}

// Wait blocks until the URL's domain is due again, with a little jitter
// so request timing does not look mechanical.
func (p *politeness) Wait(rawURL string) {
	if p.delay <= 0 {
		return
	}
	key := domainKey(rawURL)
	if last, ok := p.lastHit[key]; ok {
		jitter := time.Duration(0)
		if half := int64(p.delay) / 2; half > 0 {
			jitter = time.Duration(rand.Int64N(half))
		}
		due := last.Add(p.delay + jitter)
		if wait := time.Until(due); wait > 0 {
			time.Sleep(wait)
		}
	}
	p.lastHit[key] = time.Now()
}

// domainKey reduces a URL to its registered domain (eTLD+1), falling
// back to the bare host when the suffix list cannot place it.
func domainKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	host := u.Hostname()
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return domain
}
