package scraper

import (
	"context"
	"time"

	"radio-playlist/utils"
)

// Enricher attaches optional data to songs. Implementations must not fail:
// whatever they cannot resolve is left empty.
type Enricher interface {
	Enrich(ctx context.Context, songs []Song) []Song
}

// SnapshotStore keeps the most recent snapshot between runs.
type SnapshotStore interface {
	Load() (*PlaylistSnapshot, time.Time, error)
	Save(snapshot *PlaylistSnapshot) error
}

// Service combines a scraper with enrichment and an optional snapshot cache.
// It satisfies Scraper itself so it can be handed to the poller or the HTTP
// server directly.
type Service struct {
	scraper  Scraper
	enricher Enricher
	store    SnapshotStore
	maxAge   time.Duration
	now      func() time.Time
}

// NewService wires the pipeline. enricher and store may be nil. A cached
// snapshot is only reused when maxAge is positive.
func NewService(scraper Scraper, enricher Enricher, store SnapshotStore, maxAge time.Duration) *Service {
	return &Service{
		scraper:  scraper,
		enricher: enricher,
		store:    store,
		maxAge:   maxAge,
		now:      time.Now,
	}
}

func (s *Service) Scrape(ctx context.Context) (*PlaylistSnapshot, error) {
	if snapshot := s.cached(); snapshot != nil {
		return snapshot, nil
	}

	snapshot, err := s.scraper.Scrape(ctx)
	utils.RecordFetch(s.now(), err)
	if err != nil {
		return nil, err
	}

	if s.enricher != nil {
		snapshot = snapshot.WithSongs(s.enricher.Enrich(ctx, snapshot.Songs))
	}

	if s.store != nil {
		if err := s.store.Save(snapshot); err != nil {
			utils.Logger.Warnf("Error saving playlist snapshot: %v", err)
		}
	}

	return snapshot, nil
}

func (s *Service) cached() *PlaylistSnapshot {
	if s.store == nil || s.maxAge <= 0 {
		return nil
	}

	snapshot, savedAt, err := s.store.Load()
	if err != nil {
		utils.Logger.Warnf("Error loading cached playlist: %v", err)
		return nil
	}
	if snapshot == nil {
		return nil
	}

	age := s.now().Sub(savedAt)
	if age >= s.maxAge {
		utils.Logger.Debugf("Cached playlist is %s old, refreshing", age.Round(time.Second))
		return nil
	}

	utils.Logger.Debugf("Using cached playlist data (%s old)", age.Round(time.Second))
	return snapshot
}
