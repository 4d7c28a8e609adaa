package echo

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func startServer(t *testing.T, allowedOrigins []string, metrics *Metrics) *httptest.Server {
	t.Helper()
	s := NewServer(allowedOrigins, metrics, nil)
	mux := http.NewServeMux()
	s.SetupRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func TestEchoTextAndBinary(t *testing.T) {
	srv := startServer(t, nil, nil)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	if err := conn.WriteMessage(websocket.TextMessage, []byte("hello")); err != nil {
		t.Fatalf("write error: %v", err)
	}
	mt, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if mt != websocket.TextMessage || string(data) != "hello" {
		t.Errorf("echo = (%d, %q), want (text, hello)", mt, data)
	}

	payload := []byte{0x2, 0xF, 0xFF}
	if err := conn.WriteMessage(websocket.BinaryMessage, payload); err != nil {
		t.Fatalf("write error: %v", err)
	}
	mt, data, err = conn.ReadMessage()
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if mt != websocket.BinaryMessage || !bytes.Equal(data, payload) {
		t.Errorf("echo = (%d, %v), want (binary, %v)", mt, data, payload)
	}
}

func TestOriginFiltering(t *testing.T) {
	srv := startServer(t, []string{"https://allowed.example"}, nil)

	tests := []struct {
		name    string
		origin  string
		wantErr bool
	}{
		{"no origin header", "", false},
		{"allowed origin", "https://allowed.example", false},
		{"allowed host different scheme", "http://allowed.example", false},
		{"denied origin", "https://evil.example", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.origin != "" {
				header.Set("Origin", tt.origin)
			}
			conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
			if tt.wantErr {
				if err == nil {
					conn.Close()
					t.Error("dial succeeded, want origin rejection")
				}
				return
			}
			if err != nil {
				t.Fatalf("dial error: %v", err)
			}
			conn.Close()
		})
	}
}

func TestDefaultOriginPolicyAllowsSameHost(t *testing.T) {
	srv := startServer(t, nil, nil)

	host := strings.TrimPrefix(srv.URL, "http://")
	header := http.Header{}
	header.Set("Origin", "http://"+host)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
	if err != nil {
		t.Fatalf("same-host origin rejected: %v", err)
	}
	conn.Close()

	header.Set("Origin", "http://attacker.example")
	if conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), header); err == nil {
		conn.Close()
		t.Error("cross-host origin accepted under default policy")
	}
}

func TestMetricsCountEchoes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	srv := startServer(t, nil, m)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	conn.WriteMessage(websocket.TextMessage, []byte("one"))
	conn.ReadMessage()
	conn.WriteMessage(websocket.BinaryMessage, []byte{1, 2})
	conn.ReadMessage()

	if got := testutil.ToFloat64(m.connectionsTotal); got != 1 {
		t.Errorf("connections_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.messagesEchoed.WithLabelValues("text")); got != 1 {
		t.Errorf("messages_echoed_total{type=text} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.messagesEchoed.WithLabelValues("binary")); got != 1 {
		t.Errorf("messages_echoed_total{type=binary} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.bytesEchoed); got != 5 {
		t.Errorf("bytes_echoed_total = %v, want 5", got)
	}

	conn.Close()
}
