package poller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"radio-playlist/scraper"
	"radio-playlist/utils"
)

// DefaultInterval is the auto-refresh period.
const DefaultInterval = 60 * time.Second

type Status int

const (
	Idle Status = iota
	Loading
	Success
	Error
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// State is an immutable view of the poller. Snapshot is the last successful
// result and survives failed refreshes; Err is the most recent failure and is
// cleared by the next success.
type State struct {
	Status      Status
	Snapshot    *scraper.PlaylistSnapshot
	Err         error
	LastRefresh time.Time
	NextRefresh time.Time
}

// Poller keeps the current playlist snapshot fresh. The periodic timer and
// manual refreshes share one refresh path; a refresh that starts while
// another is running is dropped.
type Poller struct {
	source   scraper.Scraper
	interval time.Duration
	now      func() time.Time

	mu     sync.Mutex
	state  State
	subs   map[int]func(State)
	nextID int

	inFlight atomic.Bool
	reset    chan struct{}
}

func New(source scraper.Scraper, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		source:   source,
		interval: interval,
		now:      time.Now,
		subs:     make(map[int]func(State)),
		reset:    make(chan struct{}, 1),
	}
}

func (p *Poller) Interval() time.Duration { return p.interval }

// State returns the current state.
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Snapshot returns the last successfully fetched snapshot, or nil before the
// first success.
func (p *Poller) Snapshot() *scraper.PlaylistSnapshot {
	return p.State().Snapshot
}

// Subscribe registers fn for every state change and returns a function that
// removes it. fn is called from the refreshing goroutine and must not block.
func (p *Poller) Subscribe(fn func(State)) (unsubscribe func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, id)
			p.mu.Unlock()
		})
	}
}

// Refresh fetches a new snapshot now. It returns false without doing
// anything if a refresh is already running.
func (p *Poller) Refresh(ctx context.Context) bool {
	if !p.inFlight.CompareAndSwap(false, true) {
		utils.Logger.Debug("Refresh already in flight, skipping")
		return false
	}
	defer p.inFlight.Store(false)

	p.transition(func(s State) State {
		s.Status = Loading
		return s
	})

	snapshot, err := p.source.Scrape(ctx)
	now := p.now()

	if err != nil {
		utils.Logger.Warnf("Error refreshing playlist: %v", err)
		p.transition(func(s State) State {
			s.Status = Error
			s.Err = err
			return s
		})
	} else {
		p.transition(func(s State) State {
			s.Status = Success
			s.Snapshot = snapshot
			s.Err = nil
			s.LastRefresh = now
			s.NextRefresh = now.Add(p.interval)
			return s
		})
		select {
		case p.reset <- struct{}{}:
		default:
		}
	}

	p.transition(func(s State) State {
		s.Status = Idle
		return s
	})
	return true
}

// Run refreshes immediately and then on every interval until ctx is done. A
// successful manual refresh restarts the countdown.
func (p *Poller) Run(ctx context.Context) error {
	utils.Logger.Infof("Starting playlist poller with interval %v", p.interval)

	p.Refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.reset:
			ticker.Reset(p.interval)
		case <-ticker.C:
			p.Refresh(ctx)
		}
	}
}

func (p *Poller) transition(update func(State) State) {
	p.mu.Lock()
	p.state = update(p.state)
	state := p.state
	subs := make([]func(State), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}
