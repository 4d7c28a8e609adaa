// Command sockets-echo runs the websocket echo server the demo TUI (and
// any client in this module) can talk to. It also exposes prometheus
// metrics on /metrics.
package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/scratchyone/wasm-sockets/internal/config"
	"github.com/scratchyone/wasm-sockets/internal/echo"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	port := flag.Int("port", 0, "Override server port")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if level, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		log = log.Level(level)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := echo.NewMetrics(registry)

	server := echo.NewServer(cfg.Server.AllowedOrigins, metrics, &log)

	mux := http.NewServeMux()
	server.SetupRoutes(mux)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("shutting down")
		os.Exit(0)
	}()

	log.Info().Str("host", cfg.Server.Host).Int("port", cfg.Server.Port).Msg("echo server listening")
	if err := echo.ListenAndServe(cfg.Server.Host, cfg.Server.Port, mux); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
