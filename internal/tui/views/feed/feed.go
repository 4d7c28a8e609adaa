// Package feed renders the scrolling list of received messages.
package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	sockets "github.com/scratchyone/wasm-sockets"
	"github.com/scratchyone/wasm-sockets/internal/tui/theme"
)

// previewBytes caps how much of a binary payload is rendered.
const previewBytes = 16

// Model holds the message feed state.
type Model struct {
	Lines  []string
	Width  int
	Height int
}

// New creates an empty feed.
func New() Model {
	return Model{}
}

// Push appends a rendered message to the feed.
func (m *Model) Push(msg sockets.Message) {
	m.Lines = append(m.Lines, render(msg))
}

// Clear drops the feed contents.
func (m *Model) Clear() {
	m.Lines = nil
}

func render(msg sockets.Message) string {
	if msg.IsBinary() {
		tag := lipgloss.NewStyle().Foreground(theme.ColorBinary).Render("bin ")
		return tag + hexPreview(msg.Data)
	}
	tag := lipgloss.NewStyle().Foreground(theme.ColorText).Render("txt ")
	return tag + msg.Text
}

func hexPreview(data []byte) string {
	n := len(data)
	shown := data
	if n > previewBytes {
		shown = data[:previewBytes]
	}
	parts := make([]string, len(shown))
	for i, b := range shown {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	out := strings.Join(parts, " ")
	if n > previewBytes {
		out += fmt.Sprintf(" … (%d bytes)", n)
	}
	return out
}

// View renders the most recent lines that fit the height.
func (m Model) View() string {
	height := m.Height
	if height < 3 {
		height = 3
	}

	lines := m.Lines
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	body := strings.Join(lines, "\n")
	if body == "" {
		body = lipgloss.NewStyle().Foreground(theme.ColorDimmed).Render("waiting for messages…")
	}

	width := m.Width
	if width < 40 {
		width = 40
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorBorder).
		Render(body)
}
