// Package status renders the connection status bar.
package status

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	sockets "github.com/scratchyone/wasm-sockets"
	"github.com/scratchyone/wasm-sockets/internal/tui/theme"
)

// Model holds the status bar state.
type Model struct {
	URL      string
	Status   sockets.ConnectionStatus
	Received int
	Sent     int
	Width    int
}

// New creates a status bar model.
func New(url string) Model {
	return Model{URL: url, Status: sockets.StatusConnecting}
}

// View renders the status bar.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	var marker string
	switch m.Status {
	case sockets.StatusConnected:
		marker = "●"
	case sockets.StatusConnecting:
		marker = "◐"
	default:
		marker = "○"
	}
	connStr := lipgloss.NewStyle().
		Foreground(theme.StatusColor(m.Status)).
		Render(fmt.Sprintf("%s %s", marker, m.Status))

	counts := fmt.Sprintf("%d received  %d sent", m.Received, m.Sent)
	url := lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render(m.URL)

	sep := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | ")

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(connStr + sep + counts + sep + url)
}
