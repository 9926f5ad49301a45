package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"radio-playlist/coverart"
	"radio-playlist/render"
	"radio-playlist/scraper"
	"radio-playlist/spotify"
	"radio-playlist/utils"
)

// TrackInfoSource looks up track details for the track endpoint.
type TrackInfoSource interface {
	TrackInfo(ctx context.Context, artist, title string) (*coverart.TrackInfo, error)
}

type Server struct {
	source   scraper.Scraper
	tracks   TrackInfoSource
	linker   *spotify.Linker
	renderer *render.TableRenderer
	mux      *http.ServeMux
}

type errorResponse struct {
	Error string `json:"error"`
}

type trackResponse struct {
	Track *coverart.TrackInfo `json:"track"`
	Links render.Links        `json:"links"`
}

// New builds the HTTP handlers. tracks and linker may be nil; the track
// endpoint then reports 503 and search links are used instead of resolved
// Spotify pages.
func New(source scraper.Scraper, tracks TrackInfoSource, linker *spotify.Linker, renderer *render.TableRenderer) *Server {
	s := &Server{
		source:   source,
		tracks:   tracks,
		linker:   linker,
		renderer: renderer,
		mux:      http.NewServeMux(),
	}

	// Scrapes only happen on request, so an idle server must not look
	// stale. /health still reports the last scrape error.
	utils.ConfigureHealthCheck(0)

	s.mux.HandleFunc("GET /api/playlist", s.handlePlaylist)
	s.mux.HandleFunc("GET /api/track", s.handleTrack)
	s.mux.HandleFunc("GET /health", utils.HealthCheckHandler)
	s.mux.Handle("GET /metrics", promhttp.Handler())
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	utils.Logger.Debugf("%s %s", r.Method, r.URL.Path)
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handlePlaylist(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.source.Scrape(r.Context())
	if err != nil {
		utils.Logger.Errorf("Error in playlist API route: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to fetch playlist data"})
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	artist := r.URL.Query().Get("artist")
	title := r.URL.Query().Get("title")
	if artist == "" || title == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "artist and title are required"})
		return
	}
	if s.tracks == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "Track info is not configured"})
		return
	}

	info, err := s.tracks.TrackInfo(r.Context(), artist, title)
	if coverart.IsNotFound(err) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Track not found"})
		return
	}
	if err != nil {
		utils.Logger.Errorf("Error fetching track info for %s - %s: %v", artist, title, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to fetch track info"})
		return
	}

	links := render.SearchLinks(artist, title)
	spotifyURL, err := s.linker.TrackURL(r.Context(), artist, title)
	if err != nil {
		utils.Logger.Warnf("Error resolving Spotify link for %s - %s: %v", artist, title, err)
	}
	links.Spotify = spotifyURL

	writeJSON(w, http.StatusOK, trackResponse{Track: info, Links: links})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.source.Scrape(r.Context())
	if err != nil {
		utils.Logger.Errorf("Error rendering playlist page: %v", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := s.renderer.Render(w, s.renderer.NewPage(snapshot, err)); err != nil {
		utils.Logger.Errorf("Error rendering playlist page: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.Logger.Warnf("Error encoding response: %v", err)
	}
}
