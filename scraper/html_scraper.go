package scraper

import (
	"context"
	"io"
	"time"

	"github.com/PuerkitoBio/goquery"

	"radio-playlist/metrics"
	"radio-playlist/utils"
)

// HTMLScraper reads the playlist table of the station page. Only the first
// <table> in the document is considered.
type HTMLScraper struct {
	*BaseScraper
	station string
	now     func() time.Time
}

func NewHTMLScraper(base *BaseScraper, station string) *HTMLScraper {
	return &HTMLScraper{
		BaseScraper: base,
		station:     station,
		now:         time.Now,
	}
}

func (h *HTMLScraper) Scrape(ctx context.Context) (*PlaylistSnapshot, error) {
	start := h.now().UTC()
	timer := time.Now()
	defer func() { metrics.ScrapeDuration.Observe(time.Since(timer).Seconds()) }()

	body, err := h.Fetch(ctx)
	if err != nil {
		metrics.Scrapes.WithLabelValues("fetch_error").Inc()
		utils.Logger.Errorf("Error fetching playlist page: %v", err)
		return nil, err
	}
	defer body.Close()

	snapshot, err := h.Parse(body, start)
	if err != nil {
		metrics.Scrapes.WithLabelValues("scrape_error").Inc()
		utils.Logger.Errorf("Error scraping playlist: %v", err)
		return nil, err
	}

	metrics.Scrapes.WithLabelValues("success").Inc()
	metrics.SongsParsed.Set(float64(len(snapshot.Songs)))
	utils.Logger.Debugf("Scraped %d songs for station %s", len(snapshot.Songs), h.station)
	return snapshot, nil
}

// Parse builds a snapshot from a playlist document. Malformed rows are
// skipped. If the page marks more than one row live, only the topmost one
// keeps the flag.
func (h *HTMLScraper) Parse(r io.Reader, start time.Time) (*PlaylistSnapshot, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &ScrapeError{Reason: "parse document", Err: err}
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, &ScrapeError{Reason: "playlist table not found"}
	}

	songs := make([]Song, 0)
	seenLive := false
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		song, err := parseRow(i, row, h.now().UTC())
		if err != nil {
			metrics.RowsSkipped.Inc()
			utils.Logger.Debugf("Skipping playlist row: %v", err)
			return
		}
		if song == nil {
			return
		}
		if song.IsLive {
			if seenLive {
				utils.Logger.Debugf("Row %d is marked live after another live row, demoting", i)
				song.IsLive = false
			}
			seenLive = true
		}
		songs = append(songs, *song)
	})

	return &PlaylistSnapshot{
		Station:     h.station,
		LastUpdated: start,
		Songs:       songs,
	}, nil
}
