package scraper

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubScraper struct {
	calls    int
	snapshot *PlaylistSnapshot
	err      error
}

func (s *stubScraper) Scrape(ctx context.Context) (*PlaylistSnapshot, error) {
	s.calls++
	return s.snapshot, s.err
}

type stubEnricher struct{}

func (stubEnricher) Enrich(ctx context.Context, songs []Song) []Song {
	out := make([]Song, len(songs))
	copy(out, songs)
	for i := range out {
		out[i].CoverArt = "art:" + out[i].Artist
	}
	return out
}

type memoryStore struct {
	snapshot *PlaylistSnapshot
	savedAt  time.Time
	saves    int
}

func (m *memoryStore) Load() (*PlaylistSnapshot, time.Time, error) {
	return m.snapshot, m.savedAt, nil
}

func (m *memoryStore) Save(snapshot *PlaylistSnapshot) error {
	m.snapshot = snapshot
	m.savedAt = time.Now()
	m.saves++
	return nil
}

func testSnapshot() *PlaylistSnapshot {
	return &PlaylistSnapshot{
		Station:     "KINK",
		LastUpdated: time.Now(),
		Songs: []Song{
			{Timestamp: "Live", Artist: "Tame Impala", Title: "Elephant", IsLive: true},
			{Timestamp: "14:32", Artist: "Daft Punk", Title: "One More Time"},
		},
	}
}

func TestService_EnrichesWithoutMutatingScrape(t *testing.T) {
	original := testSnapshot()
	svc := NewService(&stubScraper{snapshot: original}, stubEnricher{}, nil, 0)

	snapshot, err := svc.Scrape(context.Background())
	if err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}

	if snapshot == original {
		t.Fatal("expected a new snapshot")
	}
	if snapshot.Songs[0].CoverArt != "art:Tame Impala" {
		t.Errorf("expected cover art, got %q", snapshot.Songs[0].CoverArt)
	}
	if original.Songs[0].CoverArt != "" {
		t.Error("scraped snapshot was mutated")
	}
}

func TestService_PropagatesErrors(t *testing.T) {
	want := &FetchError{URL: "http://example.com", StatusCode: 502}
	store := &memoryStore{}
	svc := NewService(&stubScraper{err: want}, stubEnricher{}, store, time.Minute)

	_, err := svc.Scrape(context.Background())
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
	if store.saves != 0 {
		t.Error("failed scrape must not be saved")
	}
}

func TestService_Cache(t *testing.T) {
	stub := &stubScraper{snapshot: testSnapshot()}
	store := &memoryStore{}
	svc := NewService(stub, nil, store, 5*time.Minute)

	if _, err := svc.Scrape(context.Background()); err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}
	if _, err := svc.Scrape(context.Background()); err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}
	if stub.calls != 1 {
		t.Errorf("expected cached snapshot on second call, scraped %d times", stub.calls)
	}

	store.savedAt = time.Now().Add(-10 * time.Minute)
	if _, err := svc.Scrape(context.Background()); err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}
	if stub.calls != 2 {
		t.Errorf("expected stale cache to be refreshed, scraped %d times", stub.calls)
	}
}

func TestService_NoCacheWithoutMaxAge(t *testing.T) {
	stub := &stubScraper{snapshot: testSnapshot()}
	store := &memoryStore{}
	svc := NewService(stub, nil, store, 0)

	svc.Scrape(context.Background())
	svc.Scrape(context.Background())
	if stub.calls != 2 {
		t.Errorf("expected every call to scrape, got %d", stub.calls)
	}
	if store.saves != 2 {
		t.Errorf("expected snapshots to be saved, got %d", store.saves)
	}
}
