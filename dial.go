package sockets

import (
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const defaultWriteTimeout = 10 * time.Second

// Dialer is the default Opener. It validates the URL synchronously and
// performs the websocket handshake on its own goroutine, so Open returns
// before the server has accepted the connection. A failed handshake is
// reported through OnError followed by OnClose.
type Dialer struct {
	// HandshakeTimeout bounds the websocket handshake. Zero means the
	// gorilla default.
	HandshakeTimeout time.Duration

	// Subprotocols are offered to the server during the handshake.
	Subprotocols []string

	// WriteTimeout bounds each outbound frame write. Zero means 10s.
	WriteTimeout time.Duration
}

// Open validates url and starts dialing it in the background.
func (d *Dialer) Open(rawURL string, h TransportHandlers) (Transport, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("sockets: parse url %q: %w", rawURL, err)
	}
	switch u.Scheme {
	case "ws", "wss":
	default:
		return nil, fmt.Errorf("sockets: unsupported scheme %q in %q", u.Scheme, rawURL)
	}

	writeTimeout := d.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = defaultWriteTimeout
	}
	c := &conn{handlers: h, writeTimeout: writeTimeout}
	wd := websocket.Dialer{
		Proxy:            websocket.DefaultDialer.Proxy,
		HandshakeTimeout: d.HandshakeTimeout,
		Subprotocols:     d.Subprotocols,
	}
	if wd.HandshakeTimeout == 0 {
		wd.HandshakeTimeout = websocket.DefaultDialer.HandshakeTimeout
	}
	go c.dial(wd, u.String())
	return c, nil
}

// conn adapts a gorilla connection to the Transport contract.
type conn struct {
	handlers     TransportHandlers
	writeTimeout time.Duration

	mu     sync.Mutex
	ws     *websocket.Conn
	closed bool

	writeMu sync.Mutex // serialises all conn writes
}

func (c *conn) dial(d websocket.Dialer, url string) {
	ws, _, err := d.Dial(url, nil)
	if err != nil {
		c.handlers.OnError(err)
		c.handlers.OnClose(websocket.CloseAbnormalClosure, err.Error())
		return
	}

	c.mu.Lock()
	if c.closed {
		// Close raced the handshake; drop the connection.
		c.mu.Unlock()
		ws.Close()
		c.handlers.OnClose(websocket.CloseNormalClosure, "")
		return
	}
	c.ws = ws
	c.mu.Unlock()

	c.handlers.OnOpen()
	c.readPump(ws)
}

func (c *conn) readPump(ws *websocket.Conn) {
	defer ws.Close()
	for {
		mt, data, err := ws.ReadMessage()
		if err != nil {
			c.finish(err)
			return
		}
		switch mt {
		case websocket.TextMessage:
			c.handlers.OnMessage(string(data))
		case websocket.BinaryMessage:
			c.handlers.OnMessage(data)
		}
	}
}

// finish reports the end of the connection: clean closes and local Close
// become a plain close notification, anything else is an error followed
// by a close.
func (c *conn) finish(err error) {
	c.mu.Lock()
	closed := c.closed
	c.closed = true
	c.mu.Unlock()

	var ce *websocket.CloseError
	switch {
	case errors.As(err, &ce) && (ce.Code == websocket.CloseNormalClosure || ce.Code == websocket.CloseGoingAway):
		c.handlers.OnClose(ce.Code, ce.Text)
	case closed:
		c.handlers.OnClose(websocket.CloseNormalClosure, "")
	default:
		c.handlers.OnError(err)
		code := websocket.CloseAbnormalClosure
		reason := err.Error()
		if ce != nil {
			code, reason = ce.Code, ce.Text
		}
		c.handlers.OnClose(code, reason)
	}
}

func (c *conn) SendText(text string) error {
	return c.write(websocket.TextMessage, []byte(text))
}

func (c *conn) SendBinary(data []byte) error {
	return c.write(websocket.BinaryMessage, data)
}

func (c *conn) write(mt int, data []byte) error {
	c.mu.Lock()
	ws, closed := c.ws, c.closed
	c.mu.Unlock()
	if closed {
		return ErrClosed
	}
	if ws == nil {
		return ErrNotConnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	ws.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	return ws.WriteMessage(mt, data)
}

// Close initiates a clean shutdown. The close notification is reported
// by the read pump once the connection unwinds.
func (c *conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	ws := c.ws
	c.mu.Unlock()

	if ws == nil {
		// Handshake still in flight; the dial goroutine reports the
		// close when it notices.
		return nil
	}

	c.writeMu.Lock()
	ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(c.writeTimeout))
	c.writeMu.Unlock()
	return ws.Close()
}
