package scraper

import (
	"context"
	"io"
	"net/http"
	"time"

	"radio-playlist/utils"
)

// UnknownArtist is used when the song text carries no artist separator.
const UnknownArtist = "Unknown"

// Song is one row of the station playlist.
type Song struct {
	Timestamp string    `json:"timestamp"`
	Artist    string    `json:"artist"`
	Title     string    `json:"title"`
	IsLive    bool      `json:"is_live"`
	ScrapedAt time.Time `json:"scraped_at"`
	CoverArt  string    `json:"coverart,omitempty"`
}

// PlaylistSnapshot is the result of a single scrape. A snapshot is never
// modified after it has been handed out; use WithSongs to derive a new one.
type PlaylistSnapshot struct {
	Station     string    `json:"station"`
	LastUpdated time.Time `json:"last_updated"`
	Songs       []Song    `json:"songs"`
}

// WithSongs returns a copy of the snapshot carrying songs.
func (p *PlaylistSnapshot) WithSongs(songs []Song) *PlaylistSnapshot {
	cp := make([]Song, len(songs))
	copy(cp, songs)
	return &PlaylistSnapshot{
		Station:     p.Station,
		LastUpdated: p.LastUpdated,
		Songs:       cp,
	}
}

// Live returns the song currently on air, if the page marked one.
func (p *PlaylistSnapshot) Live() (Song, bool) {
	for _, song := range p.Songs {
		if song.IsLive {
			return song, true
		}
	}
	return Song{}, false
}

type Scraper interface {
	Scrape(ctx context.Context) (*PlaylistSnapshot, error)
}

// BaseScraper performs the single GET every scraper starts from. It does not
// retry; a failure is returned to the caller as a *FetchError.
type BaseScraper struct {
	URL       string
	UserAgent string
	Client    *http.Client
}

func NewBaseScraper(URL, userAgent string, client *http.Client) *BaseScraper {
	if client == nil {
		client = http.DefaultClient
	}
	return &BaseScraper{URL: URL, UserAgent: userAgent, Client: client}
}

// Fetch returns the response body of the configured URL. The caller must
// close it.
func (b *BaseScraper) Fetch(ctx context.Context) (io.ReadCloser, error) {
	utils.Logger.Debugf("Fetching %s", b.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.URL, nil)
	if err != nil {
		return nil, &FetchError{URL: b.URL, Err: err}
	}
	if b.UserAgent != "" {
		req.Header.Set("User-Agent", b.UserAgent)
	}
	req.Header.Set("Cache-Control", "no-store")

	res, err := b.Client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: b.URL, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		res.Body.Close()
		utils.Logger.Debugf("Received status code %d from %s", res.StatusCode, b.URL)
		return nil, &FetchError{URL: b.URL, StatusCode: res.StatusCode}
	}

	return res.Body, nil
}
