package coverart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"radio-playlist/scraper"
)

type fakeAPI struct {
	mu          sync.Mutex
	trackImages map[string]string
	artistImgs  map[string]string
	err         error
	trackCalls  []string
	artistCalls []string
}

func (f *fakeAPI) TrackInfo(ctx context.Context, artist, title string) (*TrackInfo, error) {
	f.mu.Lock()
	f.trackCalls = append(f.trackCalls, artist+" - "+title)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	img, ok := f.trackImages[artist+" - "+title]
	if !ok {
		return nil, &APIError{Code: errCodeNotFound, Message: "Track not found"}
	}
	return &TrackInfo{Name: title, Album: &Album{Image: []Image{{URL: img, Size: "extralarge"}}}}, nil
}

func (f *fakeAPI) ArtistInfo(ctx context.Context, artist string) (*ArtistInfo, error) {
	f.mu.Lock()
	f.artistCalls = append(f.artistCalls, artist)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	img := f.artistImgs[artist]
	return &ArtistInfo{Name: artist, Image: []Image{{URL: img, Size: "large"}}}, nil
}

type mapCache struct {
	mu     sync.Mutex
	values map[string]string
}

func (c *mapCache) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *mapCache) Set(ctx context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func TestEnricher_TrackThenArtist(t *testing.T) {
	api := &fakeAPI{
		trackImages: map[string]string{"Daft Punk - One More Time": "track.png"},
		artistImgs:  map[string]string{"Tame Impala": "artist.png"},
	}
	songs := []scraper.Song{
		{Timestamp: "Live", Artist: "Tame Impala", Title: "Elephant", IsLive: true},
		{Timestamp: "14:32", Artist: "Daft Punk", Title: "One More Time"},
		{Timestamp: "14:28", Artist: "Nobody", Title: "Nothing"},
	}

	got := NewEnricher(api, nil, DefaultLimit).Enrich(context.Background(), songs)

	if got[0].CoverArt != "artist.png" {
		t.Errorf("live song: expected artist fallback, got %q", got[0].CoverArt)
	}
	if got[1].CoverArt != "track.png" {
		t.Errorf("expected track art, got %q", got[1].CoverArt)
	}
	if got[2].CoverArt != "" {
		t.Errorf("expected no art, got %q", got[2].CoverArt)
	}
	for i := range songs {
		if songs[i].CoverArt != "" {
			t.Fatalf("input song %d was mutated", i)
		}
	}
}

func TestEnricher_ErrorsAreSwallowed(t *testing.T) {
	api := &fakeAPI{err: errors.New("connection refused")}
	songs := []scraper.Song{
		{Timestamp: "Live", Artist: "Tame Impala", Title: "Elephant", IsLive: true},
		{Timestamp: "14:32", Artist: "Daft Punk", Title: "One More Time"},
	}

	got := NewEnricher(api, nil, DefaultLimit).Enrich(context.Background(), songs)

	if len(got) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(got))
	}
	for _, song := range got {
		if song.CoverArt != "" {
			t.Errorf("expected no cover art, got %q", song.CoverArt)
		}
	}
}

func TestEnricher_Limit(t *testing.T) {
	api := &fakeAPI{artistImgs: map[string]string{}}
	songs := []scraper.Song{{Timestamp: "Live", Artist: "Live Artist", Title: "Now", IsLive: true}}
	for i := 0; i < 25; i++ {
		artist := fmt.Sprintf("Artist %d", i)
		api.artistImgs[artist] = artist + ".png"
		songs = append(songs, scraper.Song{Timestamp: fmt.Sprintf("14:%02d", i), Artist: artist, Title: "Song"})
	}

	got := NewEnricher(api, nil, DefaultLimit).Enrich(context.Background(), songs)

	for i, song := range got[1:] {
		if i < DefaultLimit && song.CoverArt == "" {
			t.Errorf("song %d should have cover art", i)
		}
		if i >= DefaultLimit && song.CoverArt != "" {
			t.Errorf("song %d is beyond the limit but has cover art %q", i, song.CoverArt)
		}
	}
	if len(api.trackCalls) != DefaultLimit+1 {
		t.Errorf("expected %d track lookups, got %d", DefaultLimit+1, len(api.trackCalls))
	}
	if api.trackCalls[0] != "Live Artist - Now" {
		t.Errorf("expected live song to be looked up first, got %q", api.trackCalls[0])
	}
}

func TestEnricher_Cache(t *testing.T) {
	api := &fakeAPI{trackImages: map[string]string{"Daft Punk - One More Time": "track.png"}}
	cache := &mapCache{values: map[string]string{}}
	e := NewEnricher(api, cache, DefaultLimit)

	for i := 0; i < 3; i++ {
		if got := e.CoverArt(context.Background(), "Daft Punk", "One More Time"); got != "track.png" {
			t.Fatalf("CoverArt() = %q", got)
		}
	}
	if len(api.trackCalls) != 1 {
		t.Errorf("expected one API call, got %d", len(api.trackCalls))
	}
	if cache.values["daft punk - one more time"] != "track.png" {
		t.Errorf("unexpected cache contents %v", cache.values)
	}

	e.CoverArt(context.Background(), "Nobody", "Nothing")
	e.CoverArt(context.Background(), "Nobody", "Nothing")
	if len(api.artistCalls) != 1 {
		t.Errorf("expected known misses to be cached, got %d artist calls", len(api.artistCalls))
	}
}

func TestEnricher_DoesNotCacheOutages(t *testing.T) {
	api := &fakeAPI{err: errors.New("timeout")}
	cache := &mapCache{values: map[string]string{}}
	e := NewEnricher(api, cache, DefaultLimit)

	e.CoverArt(context.Background(), "Daft Punk", "One More Time")
	if len(cache.values) != 0 {
		t.Errorf("outage result was cached: %v", cache.values)
	}
}
