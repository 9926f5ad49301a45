package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"radio-playlist/poller"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	liveStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	headerStyle = lipgloss.NewStyle().Underline(true)
)

type stateMsg poller.State

type tickMsg time.Time

// Model is the terminal playlist view. It follows a poller and keeps the
// scroll offset when a new snapshot arrives.
type Model struct {
	ctx     context.Context
	poller  *poller.Poller
	updates chan poller.State

	state  poller.State
	offset int
	height int
	width  int
	now    func() time.Time
}

// New subscribes to p. The returned function must be called once the
// program exits.
func New(ctx context.Context, p *poller.Poller) (Model, func()) {
	updates := make(chan poller.State, 1)
	unsubscribe := p.Subscribe(func(s poller.State) {
		// Keep only the newest state; the view never needs intermediate ones.
		for {
			select {
			case updates <- s:
				return
			default:
				select {
				case <-updates:
				default:
				}
			}
		}
	})

	return Model{
		ctx:     ctx,
		poller:  p,
		updates: updates,
		state:   p.State(),
		height:  20,
		width:   80,
		now:     time.Now,
	}, unsubscribe
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForState(), tick())
}

func (m Model) waitForState() tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-m.updates:
			return stateMsg(s)
		case <-m.ctx.Done():
			return tea.Quit()
		}
	}
}

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		m.poller.Refresh(m.ctx)
		return nil
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.refresh()
		case "up", "k":
			m.offset--
		case "down", "j":
			m.offset++
		case "home", "g":
			m.offset = 0
		}
		m.offset = m.clamp(m.offset)
		return m, nil

	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.width = msg.Width
		m.offset = m.clamp(m.offset)
		return m, nil

	case stateMsg:
		m.state = poller.State(msg)
		m.offset = m.clamp(m.offset)
		return m, m.waitForState()

	case tickMsg:
		return m, tick()
	}
	return m, nil
}

// visibleRows is the number of song lines that fit under the header.
func (m Model) visibleRows() int {
	rows := m.height - 6
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m Model) clamp(offset int) int {
	songs := 0
	if m.state.Snapshot != nil {
		songs = len(m.state.Snapshot.Songs)
	}
	last := songs - m.visibleRows()
	if offset > last {
		offset = last
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

func (m Model) View() string {
	var b strings.Builder

	station := "Radio"
	if m.state.Snapshot != nil {
		station = m.state.Snapshot.Station
	}
	b.WriteString(titleStyle.Render(station+" Radio Playlist") + "\n")
	b.WriteString(dimStyle.Render(m.statusLine()) + "\n")

	if m.state.Err != nil {
		if m.state.Snapshot == nil {
			b.WriteString(errorStyle.Render("Failed to load playlist data. Please try again later.") + "\n")
		} else {
			b.WriteString(errorStyle.Render("Refresh failed, showing the last update.") + "\n")
		}
	} else {
		b.WriteString("\n")
	}

	if m.state.Snapshot == nil {
		if m.state.Err == nil {
			b.WriteString("Loading...\n")
		}
		return b.String()
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-6s %-30s %s", "Time", "Artist", "Title")) + "\n")

	songs := m.state.Snapshot.Songs
	end := m.offset + m.visibleRows()
	if end > len(songs) {
		end = len(songs)
	}
	for _, song := range songs[m.offset:end] {
		line := fmt.Sprintf("%-6s %-30s %s", song.Timestamp, truncate(song.Artist, 30), song.Title)
		line = truncate(line, m.width)
		if song.IsLive {
			line = liveStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(dimStyle.Render("r refresh · ↑/↓ scroll · q quit"))
	return b.String()
}

func (m Model) statusLine() string {
	if m.state.Status == poller.Loading {
		return "Refreshing..."
	}
	if m.state.NextRefresh.IsZero() {
		return "Waiting for first update"
	}
	remaining := m.state.NextRefresh.Sub(m.now()).Round(time.Second)
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf("Last updated %s · auto-refresh in %s",
		m.state.Snapshot.LastUpdated.Local().Format("15:04:05"), remaining)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
