package sockets

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/scratchyone/wasm-sockets/internal/echo"
)

func startEchoServer(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(echo.NewServer(nil, nil, nil).HandleWS))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestDialRejectsBadURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"unsupported scheme", "http://example.com/ws"},
		{"garbage", "://nope"},
		{"empty scheme", "example.com/ws"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.url); err == nil {
				t.Errorf("New(%q) expected error, got nil", tt.url)
			}
		})
	}
}

func TestRoundTripText(t *testing.T) {
	url := startEchoServer(t)

	c, err := New(url)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer c.Close()

	got := make(chan Message, 1)
	c.SetOnMessage(func(_ *EventClient, m Message) { got <- m })
	c.SetOnConnection(func(ec *EventClient) {
		if err := ec.SendString("Hello, World!"); err != nil {
			t.Errorf("SendString() error: %v", err)
		}
	})

	select {
	case m := <-got:
		if !m.IsText() || m.Text != "Hello, World!" {
			t.Errorf("echoed message = %+v, want Text(Hello, World!)", m)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no echo received")
	}
}

func TestRoundTripBinary(t *testing.T) {
	url := startEchoServer(t)

	c, err := New(url)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer c.Close()

	payload := []byte{0x00, 0x02, 0x0F, 0xFF, 0x14}
	got := make(chan Message, 1)
	c.SetOnMessage(func(_ *EventClient, m Message) { got <- m })
	c.SetOnConnection(func(ec *EventClient) {
		if err := ec.SendBinary(payload); err != nil {
			t.Errorf("SendBinary() error: %v", err)
		}
	})

	select {
	case m := <-got:
		if !m.IsBinary() || !bytes.Equal(m.Data, payload) {
			t.Errorf("echoed message = %+v, want byte-identical Binary", m)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no echo received")
	}
}

func TestPollingRoundTrip(t *testing.T) {
	url := startEchoServer(t)

	p, err := NewPolling(url)
	if err != nil {
		t.Fatalf("NewPolling() error: %v", err)
	}
	defer p.Close()

	waitFor(t, "connected", func() bool { return p.Status() == StatusConnected })
	if err := p.SendString("tick"); err != nil {
		t.Fatalf("SendString() error: %v", err)
	}

	var msgs []Message
	waitFor(t, "echoed message", func() bool {
		msgs = append(msgs, p.Receive()...)
		return len(msgs) > 0
	})
	if !msgs[0].IsText() || msgs[0].Text != "tick" {
		t.Errorf("msgs[0] = %+v, want Text(tick)", msgs[0])
	}
}

func TestDialFailureSignalsErrorThenClose(t *testing.T) {
	// Nothing listens on this port.
	c, err := New("ws://127.0.0.1:1/ws")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer c.Close()

	waitFor(t, "error status", func() bool { return c.Status() == StatusError })

	// The close that follows the failed dial must not change the status.
	select {
	case <-c.done:
	case <-time.After(5 * time.Second):
		t.Fatal("close event never dispatched")
	}
	if got := c.Status(); got != StatusError {
		t.Errorf("Status() = %v, want %v", got, StatusError)
	}
}

func TestSendBeforeHandshakeCompletes(t *testing.T) {
	// A black-hole address keeps the handshake pending long enough to
	// observe the not-connected send failure.
	d := &Dialer{HandshakeTimeout: 250 * time.Millisecond}
	c, err := NewWithOptions("ws://10.255.255.1:80/ws", Options{Opener: d})
	if err != nil {
		t.Fatalf("NewWithOptions() error: %v", err)
	}
	defer c.Close()

	if err := c.SendString("early"); err == nil {
		t.Error("SendString() before handshake expected error, got nil")
	}
	if got := c.Status(); got != StatusConnecting {
		t.Errorf("Status() = %v, want %v", got, StatusConnecting)
	}
}

func TestCloseProducesCleanDisconnect(t *testing.T) {
	url := startEchoServer(t)

	c, err := New(url)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	waitFor(t, "connected", func() bool { return c.Status() == StatusConnected })

	closed := make(chan struct{})
	c.SetOnClose(func(code int, reason string) { close(closed) })

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("on-close handler never ran")
	}
	if got := c.Status(); got != StatusDisconnected {
		t.Errorf("Status() = %v, want %v", got, StatusDisconnected)
	}
}

func TestServerInitiatedClose(t *testing.T) {
	// A server that accepts the connection and immediately closes it.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"),
			time.Now().Add(time.Second))
		conn.Close()
	}))
	t.Cleanup(srv.Close)

	c, err := New("ws" + strings.TrimPrefix(srv.URL, "http"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer c.Close()

	waitFor(t, "disconnected", func() bool { return c.Status() == StatusDisconnected })
}
