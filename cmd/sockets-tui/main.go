// Command sockets-tui connects a PollingClient to a websocket server and
// drains it on a fixed tick, rendering the feed in the terminal.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	sockets "github.com/scratchyone/wasm-sockets"
	"github.com/scratchyone/wasm-sockets/internal/config"
	"github.com/scratchyone/wasm-sockets/internal/tui/app"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	url := flag.String("url", "", "Override WebSocket URL")
	tick := flag.Duration("tick", 0, "Override poll interval")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *url != "" {
		cfg.Client.URL = *url
	}
	if *tick > 0 {
		cfg.Client.PollInterval = *tick
	}

	client, err := sockets.NewPolling(cfg.Client.URL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create client: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	m := app.New(client, cfg.Client.PollInterval)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
