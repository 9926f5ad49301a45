package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// JSONScraper reads a snapshot that another instance already produced and
// serves on /api/playlist.
type JSONScraper struct {
	*BaseScraper
}

func NewJSONScraper(base *BaseScraper) *JSONScraper {
	return &JSONScraper{BaseScraper: base}
}

// PlaylistEndpoint returns the playlist API URL for a server base URL.
func PlaylistEndpoint(server string) string {
	return strings.TrimRight(server, "/") + "/api/playlist"
}

func (s *JSONScraper) Scrape(ctx context.Context) (*PlaylistSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, &FetchError{URL: s.URL, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: s.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&body) == nil && body.Error != "" {
			return nil, &FetchError{URL: s.URL, StatusCode: resp.StatusCode, Err: fmt.Errorf("status code %d: %s", resp.StatusCode, body.Error)}
		}
		return nil, &FetchError{URL: s.URL, StatusCode: resp.StatusCode}
	}

	var snapshot PlaylistSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decode playlist: %w", err)
	}
	if snapshot.Songs == nil {
		snapshot.Songs = []Song{}
	}

	return &snapshot, nil
}
