// Package theme provides the Lip Gloss color palette for the demo TUI.
// It is a leaf package with no internal imports to avoid import cycles.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	sockets "github.com/scratchyone/wasm-sockets"
)

// Connection state colors.
var (
	ColorConnecting   = lipgloss.Color("#d97706")
	ColorConnected    = lipgloss.Color("#22c55e")
	ColorError        = lipgloss.Color("#dc2626")
	ColorDisconnected = lipgloss.Color("#6b7280")
)

// UI chrome colors.
var (
	ColorBorder = lipgloss.Color("#4b5563")
	ColorDimmed = lipgloss.Color("#6b7280")
	ColorBright = lipgloss.Color("#f9fafb")
	ColorBinary = lipgloss.Color("#a855f7")
	ColorText   = lipgloss.Color("#3b82f6")
)

// StatusColor returns the color for a connection status.
func StatusColor(s sockets.ConnectionStatus) lipgloss.Color {
	switch s {
	case sockets.StatusConnected:
		return ColorConnected
	case sockets.StatusError:
		return ColorError
	case sockets.StatusDisconnected:
		return ColorDisconnected
	default:
		return ColorConnecting
	}
}
