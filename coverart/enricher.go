package coverart

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"radio-playlist/metrics"
	"radio-playlist/scraper"
	"radio-playlist/utils"
)

// DefaultLimit bounds how many non-live songs are looked up per snapshot.
const DefaultLimit = 10

// MetadataAPI is the subset of Last.fm the enricher talks to.
type MetadataAPI interface {
	TrackInfo(ctx context.Context, artist, title string) (*TrackInfo, error)
	ArtistInfo(ctx context.Context, artist string) (*ArtistInfo, error)
}

// Cache remembers lookup results by song key. An empty value records a
// known miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type Enricher struct {
	api   MetadataAPI
	cache Cache
	limit int
}

// NewEnricher returns an enricher that resolves at most limit non-live songs
// per call in addition to the live one. cache may be nil.
func NewEnricher(api MetadataAPI, cache Cache, limit int) *Enricher {
	if limit < 0 {
		limit = DefaultLimit
	}
	return &Enricher{api: api, cache: cache, limit: limit}
}

// Enrich returns a copy of songs with cover art attached. The live song is
// resolved first, then up to limit of the most recent other songs in
// parallel. It never fails; unresolved songs keep an empty CoverArt.
func (e *Enricher) Enrich(ctx context.Context, songs []scraper.Song) []scraper.Song {
	out := make([]scraper.Song, len(songs))
	copy(out, songs)

	for i := range out {
		if out[i].IsLive {
			if out[i].CoverArt == "" {
				out[i].CoverArt = e.CoverArt(ctx, out[i].Artist, out[i].Title)
			}
			break
		}
	}

	var g errgroup.Group
	queued := 0
	for i := range out {
		if out[i].IsLive {
			continue
		}
		if queued >= e.limit {
			break
		}
		queued++
		if out[i].CoverArt != "" {
			continue
		}
		song := &out[i]
		g.Go(func() error {
			song.CoverArt = e.CoverArt(ctx, song.Artist, song.Title)
			return nil
		})
	}
	g.Wait()

	return out
}

// CoverArt resolves the image for one song, consulting the cache first.
func (e *Enricher) CoverArt(ctx context.Context, artist, title string) string {
	key := cacheKey(artist, title)

	if e.cache != nil {
		value, found, err := e.cache.Get(ctx, key)
		if err != nil {
			utils.Logger.Debugf("Cover art cache lookup failed for %s: %v", key, err)
		} else if found {
			return value
		}
	}

	image, definitive := e.lookup(ctx, artist, title)

	if e.cache != nil && (image != "" || definitive) {
		if err := e.cache.Set(ctx, key, image); err != nil {
			utils.Logger.Debugf("Cover art cache store failed for %s: %v", key, err)
		}
	}

	return image
}

// lookup tries the track first and the artist second. definitive is false
// when a transport failure prevented a clean answer, so misses caused by an
// outage are not cached.
func (e *Enricher) lookup(ctx context.Context, artist, title string) (image string, definitive bool) {
	definitive = true

	track, err := e.api.TrackInfo(ctx, artist, title)
	switch {
	case err == nil:
		if image = track.CoverArt(); image != "" {
			metrics.CoverArtLookups.WithLabelValues("track", "hit").Inc()
			return image, true
		}
		metrics.CoverArtLookups.WithLabelValues("track", "miss").Inc()
	case IsNotFound(err):
		metrics.CoverArtLookups.WithLabelValues("track", "miss").Inc()
	default:
		definitive = false
		metrics.CoverArtLookups.WithLabelValues("track", "error").Inc()
		utils.Logger.Debugf("Track info lookup failed for %s - %s: %v", artist, title, err)
	}

	info, err := e.api.ArtistInfo(ctx, artist)
	switch {
	case err == nil:
		if image = PickImage(info.Image); image != "" {
			metrics.CoverArtLookups.WithLabelValues("artist", "hit").Inc()
			return image, true
		}
		metrics.CoverArtLookups.WithLabelValues("artist", "miss").Inc()
	case IsNotFound(err):
		metrics.CoverArtLookups.WithLabelValues("artist", "miss").Inc()
	default:
		definitive = false
		metrics.CoverArtLookups.WithLabelValues("artist", "error").Inc()
		utils.Logger.Debugf("Artist info lookup failed for %s: %v", artist, err)
	}

	return "", definitive
}

func cacheKey(artist, title string) string {
	return strings.ToLower(strings.TrimSpace(artist) + " - " + strings.TrimSpace(title))
}
