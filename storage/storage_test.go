package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"radio-playlist/scraper"
)

func TestNewCache(t *testing.T) {
	cache, err := NewCache("none", "", 0, 0)
	if err != nil || cache != nil {
		t.Errorf("none: expected nil cache, got %v, %v", cache, err)
	}

	if _, err := NewCache("memcached", "", 0, 0); err == nil {
		t.Error("expected error for unknown cache type")
	}

	if _, err := NewCache("postgres", "", 0, 0); err == nil {
		t.Error("expected error for postgres without connection string")
	}

	if _, err := NewCache("redis", "not a url", 0, 0); err == nil {
		t.Error("expected error for invalid redis url")
	}

	cache, err = NewCache("", "", 0, 0)
	if err != nil {
		t.Fatalf("default cache: %v", err)
	}
	defer cache.Close()
	if err := cache.Set(context.Background(), "a - b", "x.png"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok, _ := cache.Get(context.Background(), "a - b"); !ok || v != "x.png" {
		t.Errorf("Get() = %q, %v", v, ok)
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(2, 0)

	cache.Set(ctx, "one", "1.png")
	cache.Set(ctx, "two", "")
	cache.Set(ctx, "three", "3.png")

	if _, found, _ := cache.Get(ctx, "one"); found {
		t.Error("expected oldest entry to be evicted")
	}
	if v, found, _ := cache.Get(ctx, "two"); !found || v != "" {
		t.Errorf("expected remembered miss, got %q, %v", v, found)
	}
	if v, found, _ := cache.Get(ctx, "three"); !found || v != "3.png" {
		t.Errorf("Get(three) = %q, %v", v, found)
	}
}

func TestMemoryCache_TTL(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(10, 20*time.Millisecond)

	cache.Set(ctx, "k", "v")
	time.Sleep(60 * time.Millisecond)
	if _, found, _ := cache.Get(ctx, "k"); found {
		t.Error("expected entry to expire")
	}
}

func TestSQLiteCache(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "coverart.sqlite")

	cache, err := NewSQLiteCache(path, time.Hour)
	if err != nil {
		t.Fatalf("NewSQLiteCache: %v", err)
	}
	defer cache.Close()

	if _, found, err := cache.Get(ctx, "missing"); found || err != nil {
		t.Fatalf("expected miss, got %v, %v", found, err)
	}

	if err := cache.Set(ctx, "daft punk - one more time", "a.png"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := cache.Set(ctx, "daft punk - one more time", "b.png"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if v, found, err := cache.Get(ctx, "daft punk - one more time"); err != nil || !found || v != "b.png" {
		t.Errorf("Get() = %q, %v, %v", v, found, err)
	}

	cache.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, found, _ := cache.Get(ctx, "daft punk - one more time"); found {
		t.Error("expected expired entry to miss")
	}
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "playlist.json")
	store, err := NewFileStorage(path)
	if err != nil {
		t.Fatalf("NewFileStorage: %v", err)
	}

	snapshot, _, err := store.Load()
	if err != nil || snapshot != nil {
		t.Fatalf("expected empty store, got %v, %v", snapshot, err)
	}

	want := &scraper.PlaylistSnapshot{
		Station:     "KINK",
		LastUpdated: time.Date(2026, 10, 19, 14, 33, 0, 0, time.UTC),
		Songs: []scraper.Song{
			{Timestamp: "Live", Artist: "Tame Impala", Title: "Elephant", IsLive: true, CoverArt: "x.png"},
		},
	}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, savedAt, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Station != want.Station || len(got.Songs) != 1 || got.Songs[0] != want.Songs[0] {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
	if time.Since(savedAt) > time.Minute {
		t.Errorf("unexpected saved time %v", savedAt)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected only the snapshot file, found %d entries", len(entries))
	}
}
