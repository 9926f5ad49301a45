package render

import (
	"embed"
	"html/template"
	"io"
	"time"

	"radio-playlist/scraper"
)

//go:embed templates/*.html
var templates embed.FS

// Row is one rendered playlist entry.
type Row struct {
	scraper.Song
	Links Links
}

// Page is the data behind the playlist page. Snapshot is nil when the first
// fetch failed; Error then carries the banner text.
type Page struct {
	Station        string
	Snapshot       *scraper.PlaylistSnapshot
	Live           *Row
	Rows           []Row
	Error          string
	RefreshSeconds int
}

type TableRenderer struct {
	tmpl    *template.Template
	station string
	refresh time.Duration
}

func NewTableRenderer(station string, refresh time.Duration) (*TableRenderer, error) {
	tmpl, err := template.New("playlist.html").Funcs(template.FuncMap{
		"isoTime": func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
	}).ParseFS(templates, "templates/playlist.html")
	if err != nil {
		return nil, err
	}
	return &TableRenderer{tmpl: tmpl, station: station, refresh: refresh}, nil
}

// NewPage prepares snapshot for display. err is shown as an inline banner.
func (t *TableRenderer) NewPage(snapshot *scraper.PlaylistSnapshot, err error) Page {
	page := Page{
		Station:        t.station,
		Snapshot:       snapshot,
		RefreshSeconds: int(t.refresh.Seconds()),
	}
	if err != nil {
		page.Error = "Failed to load playlist data. Please try again later."
	}
	if snapshot == nil {
		return page
	}

	page.Station = snapshot.Station
	page.Rows = make([]Row, 0, len(snapshot.Songs))
	for _, song := range snapshot.Songs {
		row := Row{Song: song, Links: SearchLinks(song.Artist, song.Title)}
		if song.IsLive && page.Live == nil {
			live := row
			page.Live = &live
		}
		page.Rows = append(page.Rows, row)
	}
	return page
}

func (t *TableRenderer) Render(w io.Writer, page Page) error {
	return t.tmpl.Execute(w, page)
}
