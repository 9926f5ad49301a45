package cmd

import (
	"context"
	"net/http"
	"time"

	"radio-playlist/coverart"
	"radio-playlist/scraper"
	"radio-playlist/spotify"
	"radio-playlist/storage"
)

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: cfg.HTTPTimeout}
}

// newLastFM returns nil when no API key is configured.
func newLastFM(client *http.Client) *coverart.Client {
	if cfg.LastFMAPIKey == "" {
		return nil
	}
	return coverart.NewClient(cfg.LastFMAPIKey, cfg.LastFMURL, client)
}

func newLinker(ctx context.Context) *spotify.Linker {
	return spotify.NewLinker(ctx, cfg.SpotifyID, cfg.SpotifySecret)
}

// newService builds the scrape pipeline for the configured station. The
// returned function releases the cover art cache.
func newService(client *http.Client, lastfm *coverart.Client, store scraper.SnapshotStore, maxAge time.Duration) (*scraper.Service, func(), error) {
	base := scraper.NewBaseScraper(cfg.PlaylistURL, cfg.UserAgent, client)
	source := scraper.NewHTMLScraper(base, cfg.Station)

	cleanup := func() {}
	var enricher scraper.Enricher
	if lastfm != nil {
		cache, err := storage.NewCache(cfg.Cache, cfg.CacheDSN, cfg.CacheSize, cfg.CacheTTL)
		if err != nil {
			return nil, nil, err
		}

		var enricherCache coverart.Cache
		if cache != nil {
			enricherCache = cache
			cleanup = func() {
				if err := cache.Close(); err != nil {
					logger.Warnf("Error closing cover art cache: %v", err)
				}
			}
		}
		enricher = coverart.NewEnricher(lastfm, enricherCache, cfg.EnrichLimit)
	} else {
		logger.Info("No Last.fm API key configured, cover art is disabled")
	}

	return scraper.NewService(source, enricher, store, maxAge), cleanup, nil
}

// newSnapshotStore returns nil when no snapshot file is configured.
func newSnapshotStore() (scraper.SnapshotStore, error) {
	if cfg.SnapshotFile == "" {
		return nil, nil
	}
	store, err := storage.NewFileStorage(cfg.SnapshotFile)
	if err != nil {
		return nil, err
	}
	return store, nil
}
