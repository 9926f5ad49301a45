package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"radio-playlist/poller"
	"radio-playlist/scraper"
)

type staticSource struct {
	snapshot *scraper.PlaylistSnapshot
	err      error
}

func (s *staticSource) Scrape(ctx context.Context) (*scraper.PlaylistSnapshot, error) {
	return s.snapshot, s.err
}

func playlist(n int) *scraper.PlaylistSnapshot {
	songs := []scraper.Song{{Timestamp: "Live", Artist: "Tame Impala", Title: "Elephant", IsLive: true}}
	for i := 1; i < n; i++ {
		songs = append(songs, scraper.Song{Timestamp: fmt.Sprintf("14:%02d", i), Artist: fmt.Sprintf("Artist %d", i), Title: "Song"})
	}
	return &scraper.PlaylistSnapshot{Station: "KINK", LastUpdated: time.Now(), Songs: songs}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_LoadingAndError(t *testing.T) {
	p := poller.New(&staticSource{err: errors.New("boom")}, time.Minute)
	m, unsubscribe := New(context.Background(), p)
	defer unsubscribe()

	if !strings.Contains(m.View(), "Loading...") {
		t.Errorf("expected loading indicator, got:\n%s", m.View())
	}

	p.Refresh(context.Background())
	m = update(t, m, stateMsg(p.State()))

	view := m.View()
	if !strings.Contains(view, "Failed to load playlist data") {
		t.Errorf("expected error banner, got:\n%s", view)
	}
	if strings.Contains(view, "Loading...") {
		t.Error("loading indicator should be gone after the first result")
	}
}

func TestModel_KeepsScrollAcrossRefresh(t *testing.T) {
	source := &staticSource{snapshot: playlist(40)}
	p := poller.New(source, time.Minute)
	m, unsubscribe := New(context.Background(), p)
	defer unsubscribe()

	p.Refresh(context.Background())
	m = update(t, m, stateMsg(p.State()))
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 16})

	for i := 0; i < 5; i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.offset != 5 {
		t.Fatalf("expected offset 5, got %d", m.offset)
	}

	source.snapshot = playlist(41)
	p.Refresh(context.Background())
	m = update(t, m, stateMsg(p.State()))
	if m.offset != 5 {
		t.Errorf("expected scroll offset to survive refresh, got %d", m.offset)
	}
	if !strings.Contains(m.View(), "Artist 5 ") {
		t.Errorf("expected view to start at offset, got:\n%s", m.View())
	}

	source.snapshot = playlist(3)
	p.Refresh(context.Background())
	m = update(t, m, stateMsg(p.State()))
	if m.offset != 0 {
		t.Errorf("expected offset clamped for a shorter playlist, got %d", m.offset)
	}
}

func TestModel_BackgroundErrorKeepsData(t *testing.T) {
	source := &staticSource{snapshot: playlist(3)}
	p := poller.New(source, time.Minute)
	m, unsubscribe := New(context.Background(), p)
	defer unsubscribe()

	p.Refresh(context.Background())
	source.snapshot, source.err = nil, errors.New("boom")
	p.Refresh(context.Background())
	m = update(t, m, stateMsg(p.State()))

	view := m.View()
	if !strings.Contains(view, "Refresh failed, showing the last update.") {
		t.Errorf("expected inline refresh error, got:\n%s", view)
	}
	if !strings.Contains(view, "Tame Impala") {
		t.Errorf("expected last snapshot to stay visible, got:\n%s", view)
	}
}

func TestModel_Quit(t *testing.T) {
	m, unsubscribe := New(context.Background(), poller.New(&staticSource{}, time.Minute))
	defer unsubscribe()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModel_SubscriptionDeliversLatestState(t *testing.T) {
	p := poller.New(&staticSource{snapshot: playlist(2)}, time.Minute)
	m, unsubscribe := New(context.Background(), p)
	defer unsubscribe()

	p.Refresh(context.Background())

	msg := m.waitForState()()
	state, ok := msg.(stateMsg)
	if !ok {
		t.Fatalf("expected stateMsg, got %T", msg)
	}
	if poller.State(state).Status != poller.Idle || state.Snapshot == nil {
		t.Errorf("expected the final idle state with data, got %+v", state)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Errorf("truncate() = %q", got)
	}
	if got := truncate("abc", 10); got != "abc" {
		t.Errorf("truncate() = %q", got)
	}
}
