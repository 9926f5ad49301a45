package scraper

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	songSeparator = " - "
	liveMarker    = "live"
)

// SplitSongText splits "artist - title" on the first separator. Text without
// a separator is attributed to UnknownArtist.
func SplitSongText(text string) (artist, title string) {
	artist, title, found := strings.Cut(text, songSeparator)
	if !found {
		return UnknownArtist, text
	}
	return strings.TrimSpace(artist), strings.TrimSpace(title)
}

// IsLiveTimestamp reports whether the timestamp cell marks the song on air.
func IsLiveTimestamp(timestamp string) bool {
	return strings.EqualFold(strings.TrimSpace(timestamp), liveMarker)
}

// parseRow turns one <tr> into a Song. Rows with fewer than two cells are
// not songs (headers, ads) and yield nil without an error.
func parseRow(index int, row *goquery.Selection, scrapedAt time.Time) (*Song, error) {
	cells := row.Find("td")
	if cells.Length() < 2 {
		return nil, nil
	}

	timestamp := strings.TrimSpace(cells.Eq(0).Text())
	songText := strings.TrimSpace(cells.Eq(1).Text())
	if songText == "" {
		return nil, &ParseRowError{Row: index, Reason: "empty song cell"}
	}

	artist, title := SplitSongText(songText)

	return &Song{
		Timestamp: timestamp,
		Artist:    artist,
		Title:     title,
		IsLive:    IsLiveTimestamp(timestamp),
		ScrapedAt: scrapedAt,
	}, nil
}
