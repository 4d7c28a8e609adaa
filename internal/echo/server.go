// Package echo implements the websocket peer used by the demo command
// and the integration tests: every text or binary frame a client sends
// is echoed back on the same connection.
package echo

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

type Server struct {
	log            zerolog.Logger
	metrics        *Metrics
	allowedOrigins map[string]bool
	allowedHosts   map[string]bool
}

// NewServer creates an echo server. An empty allowedOrigins list permits
// same-host and localhost origins only; browser-less clients that send
// no Origin header are always accepted.
func NewServer(allowedOrigins []string, metrics *Metrics, logger *zerolog.Logger) *Server {
	log := zerolog.Nop()
	if logger != nil {
		log = *logger
	}
	s := &Server{
		log:            log,
		metrics:        metrics,
		allowedOrigins: make(map[string]bool),
		allowedHosts:   make(map[string]bool),
	}

	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		s.allowedOrigins[trimmed] = true
		if parsed, err := url.Parse(trimmed); err == nil && parsed.Host != "" {
			s.allowedHosts[parsed.Host] = true
		}
	}

	return s
}

func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.HandleWS)
}

func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: s.checkOrigin,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Str("addr", r.RemoteAddr).Msg("ws upgrade error")
		return
	}

	s.log.Debug().Str("addr", r.RemoteAddr).Msg("ws client connected")
	if s.metrics != nil {
		s.metrics.connectionsTotal.Inc()
		s.metrics.connectionsActive.Inc()
	}

	defer func() {
		conn.Close()
		if s.metrics != nil {
			s.metrics.connectionsActive.Dec()
		}
		s.log.Debug().Str("addr", r.RemoteAddr).Msg("ws client disconnected")
	}()

	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}
		if err := conn.WriteMessage(mt, data); err != nil {
			return
		}
		if s.metrics != nil {
			s.metrics.messagesEchoed.WithLabelValues(frameLabel(mt)).Inc()
			s.metrics.bytesEchoed.Add(float64(len(data)))
		}
	}
}

func frameLabel(mt int) string {
	if mt == websocket.BinaryMessage {
		return "binary"
	}
	return "text"
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	if len(s.allowedOrigins) > 0 {
		if s.allowedOrigins[origin] {
			return true
		}
		if parsed, err := url.Parse(origin); err == nil && parsed.Host != "" {
			return s.allowedHosts[parsed.Host]
		}
		return false
	}

	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := parsed.Host
	if host == "" {
		return false
	}

	if host == r.Host {
		return true
	}

	if strings.HasPrefix(host, "localhost:") || host == "localhost" {
		return true
	}
	if strings.HasPrefix(host, "127.0.0.1:") || host == "127.0.0.1" {
		return true
	}
	if strings.HasPrefix(host, "[::1]:") || host == "::1" {
		return true
	}

	return false
}

// ListenAndServe serves mux on host:port.
func ListenAndServe(host string, port int, mux *http.ServeMux) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	return http.ListenAndServe(addr, mux)
}
