// Package app is the root Bubble Tea model of the demo TUI. It drains a
// PollingClient on a fixed tick, the way a game loop would.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sockets "github.com/scratchyone/wasm-sockets"
	"github.com/scratchyone/wasm-sockets/internal/tui/theme"
	"github.com/scratchyone/wasm-sockets/internal/tui/views/feed"
	"github.com/scratchyone/wasm-sockets/internal/tui/views/status"
)

// TickMsg drives one poll of the client.
type TickMsg time.Time

// Model is the root Bubble Tea model.
type Model struct {
	client *sockets.PollingClient
	tick   time.Duration

	keys   KeyMap
	input  textinput.Model
	feed   feed.Model
	status status.Model

	width  int
	height int
	sent   int
}

// New creates the root model around an already-connecting client.
func New(client *sockets.PollingClient, tick time.Duration) Model {
	input := textinput.New()
	input.Placeholder = "type a message and press enter"
	input.Focus()

	return Model{
		client: client,
		tick:   tick,
		keys:   DefaultKeyMap(),
		input:  input,
		feed:   feed.New(),
		status: status.New(client.URL()),
	}
}

// Init schedules the first poll.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.tickCmd())
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.status.Width = msg.Width
		m.feed.Width = msg.Width
		m.feed.Height = msg.Height - 7
		m.input.Width = msg.Width - 4
		return m, nil

	case TickMsg:
		for _, received := range m.client.Receive() {
			m.feed.Push(received)
			m.status.Received++
		}
		m.status.Status = m.client.Status()
		return m, m.tickCmd()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.client.Close()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Clear):
			m.feed.Clear()
			return m, nil

		case key.Matches(msg, m.keys.Send):
			text := m.input.Value()
			if text == "" {
				return m, nil
			}
			if err := m.client.SendString(text); err == nil {
				m.sent++
				m.status.Sent = m.sent
				m.input.Reset()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the status bar, the feed and the input line.
func (m Model) View() string {
	help := lipgloss.NewStyle().
		Foreground(theme.ColorDimmed).
		Render("enter send · ctrl+l clear · esc quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		m.status.View(),
		m.feed.View(),
		m.input.View(),
		help,
	)
}
