package sockets

import (
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
)

// Options configures the optional pieces of a client. The zero value is
// ready to use: a gorilla-backed Dialer and no logging.
type Options struct {
	// Opener substitutes the transport. Nil means a zero-value Dialer.
	Opener Opener

	// Logger enables structured logging. Nil disables it.
	Logger *zerolog.Logger
}

// EventClient drives one websocket connection and dispatches its events
// to four replaceable handler slots. All handlers run one at a time on a
// single dispatch goroutine, in the order the transport delivered the
// events. Create one with New; a client whose connection went away is
// done for good, reconnecting means creating a new client.
type EventClient struct {
	url       string
	transport Transport
	log       zerolog.Logger

	cell *stateCell

	events chan event
	done   chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// stateCell is the shared home of everything the dispatch path mutates:
// the connection status and the four handler slots. Status writes happen
// only during event dispatch; everyone else reads snapshots under the
// mutex.
type stateCell struct {
	mu           sync.Mutex
	status       ConnectionStatus
	onConnection func(*EventClient)
	onMessage    func(*EventClient, Message)
	onError      func(error)
	onClose      func(code int, reason string)
}

type eventKind int

const (
	evOpen eventKind = iota
	evError
	evClose
	evMessage    // raw payload from the transport, needs classification
	evClassified // materialized message re-entering the queue
	evFault      // delivered to on-error without a status transition
)

type event struct {
	kind    eventKind
	err     error
	code    int
	reason  string
	payload any
	msg     Message
}

// New creates an EventClient and starts connecting to a websocket URL.
//
// An error from New means the transport itself could not be constructed
// (for example a malformed URL). A nil error does not mean the
// connection succeeded: that is signaled later through the on-connection
// callback, or an on-error callback if the server refuses.
func New(url string) (*EventClient, error) {
	return NewWithOptions(url, Options{})
}

// NewWithOptions is New with an explicit transport and logger.
func NewWithOptions(url string, opts Options) (*EventClient, error) {
	opener := opts.Opener
	if opener == nil {
		opener = &Dialer{}
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = opts.Logger.With().Str("url", url).Logger()
	}

	c := &EventClient{
		url:    url,
		log:    logger,
		cell:   &stateCell{status: StatusConnecting},
		events: make(chan event, 32),
		done:   make(chan struct{}),
	}

	t, err := opener.Open(url, TransportHandlers{
		OnOpen:  func() { c.post(event{kind: evOpen}) },
		OnError: func(err error) { c.post(event{kind: evError, err: err}) },
		OnClose: func(code int, reason string) {
			c.post(event{kind: evClose, code: code, reason: reason})
		},
		OnMessage: func(payload any) { c.post(event{kind: evMessage, payload: payload}) },
	})
	if err != nil {
		return nil, err
	}
	c.transport = t

	go c.loop()
	return c, nil
}

// URL returns the URL this client was created with.
func (c *EventClient) URL() string { return c.url }

// Status returns a snapshot of the current connection status.
func (c *EventClient) Status() ConnectionStatus {
	c.cell.mu.Lock()
	defer c.cell.mu.Unlock()
	return c.cell.status
}

// SetOnConnection registers f to run when the server accepts the
// connection. The handler receives the client itself so it can send
// immediately. It replaces any previously registered handler; nil
// disables the slot. Handlers registered after the event fired are not
// invoked retroactively.
func (c *EventClient) SetOnConnection(f func(*EventClient)) {
	c.cell.mu.Lock()
	c.cell.onConnection = f
	c.cell.mu.Unlock()
}

// SetOnMessage registers f to run for every classified inbound message.
// Replace-on-set semantics, nil disables, no retroactive delivery.
func (c *EventClient) SetOnMessage(f func(*EventClient, Message)) {
	c.cell.mu.Lock()
	c.cell.onMessage = f
	c.cell.mu.Unlock()
}

// SetOnError registers f to run when the transport reports an error, or
// when an inbound payload cannot be classified. Replace-on-set
// semantics, nil disables.
func (c *EventClient) SetOnError(f func(error)) {
	c.cell.mu.Lock()
	c.cell.onError = f
	c.cell.mu.Unlock()
}

// SetOnClose registers f to run when the connection is finished, with
// the close code and reason the transport reported. Replace-on-set
// semantics, nil disables. The handler does not receive the client; a
// handler that needs it must capture it.
func (c *EventClient) SetOnClose(f func(code int, reason string)) {
	c.cell.mu.Lock()
	c.cell.onClose = f
	c.cell.mu.Unlock()
}

// SendString forwards a text message unmodified to the transport. It
// fails with ErrNotConnected until the open notification has fired; the
// connection is not torn down by a failed send.
func (c *EventClient) SendString(text string) error {
	return c.transport.SendText(text)
}

// SendBinary forwards a binary message unmodified to the transport, with
// the same contract as SendString.
func (c *EventClient) SendBinary(data []byte) error {
	return c.transport.SendBinary(data)
}

// Close tears down the transport and, once the close notification has
// been dispatched, stops the dispatch goroutine. Safe to call more than
// once.
func (c *EventClient) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.transport.Close()
	})
	return c.closeErr
}

// post hands an event to the dispatch loop. Events arriving after the
// loop stopped are dropped; the connection is already finished then.
func (c *EventClient) post(ev event) {
	select {
	case c.events <- ev:
	case <-c.done:
	}
}

// loop is the single dispatch goroutine. It exits after the close event,
// which the transport contract guarantees is final.
func (c *EventClient) loop() {
	for {
		select {
		case ev := <-c.events:
			final := c.dispatch(ev)
			if final {
				close(c.done)
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *EventClient) dispatch(ev event) (final bool) {
	switch ev.kind {
	case evOpen:
		c.cell.mu.Lock()
		if c.cell.status == StatusConnecting {
			c.cell.status = StatusConnected
		}
		f := c.cell.onConnection
		c.cell.mu.Unlock()
		c.log.Trace().Msg("connection opened")
		if f != nil {
			f(c)
		}

	case evError:
		c.cell.mu.Lock()
		c.cell.status = StatusError
		f := c.cell.onError
		c.cell.mu.Unlock()
		c.log.Trace().Err(ev.err).Msg("transport error")
		if f != nil {
			f(ev.err)
		}

	case evClose:
		c.cell.mu.Lock()
		// A prior error takes precedence over the close that follows it.
		if c.cell.status != StatusError {
			c.cell.status = StatusDisconnected
		}
		f := c.cell.onClose
		c.cell.mu.Unlock()
		c.log.Trace().Int("code", ev.code).Str("reason", ev.reason).Msg("connection closed")
		if f != nil {
			f(ev.code, ev.reason)
		}
		return true

	case evMessage:
		c.classify(ev.payload)

	case evClassified:
		c.deliver(ev.msg)

	case evFault:
		c.cell.mu.Lock()
		f := c.cell.onError
		c.cell.mu.Unlock()
		if f != nil {
			f(ev.err)
		}
	}
	return false
}

// classify routes one inbound payload to exactly one message shape: a
// binary buffer, a text message, or a blob-like payload that has to be
// materialized first. An unrecognized shape is reported to the on-error
// slot instead of taking the process down; the connection itself is
// still healthy, so the status does not change.
func (c *EventClient) classify(payload any) {
	switch p := payload.(type) {
	case []byte:
		c.log.Trace().Int("bytes", len(p)).Msg("message event, received binary buffer")
		c.deliver(Binary(p))
	case string:
		c.log.Trace().Int("chars", len(p)).Msg("message event, received text")
		c.deliver(Text(p))
	case io.Reader:
		// Materialization happens off the dispatch goroutine and
		// re-enters the queue when done, so messages arriving in the
		// meantime may be delivered first.
		c.log.Trace().Msg("message event, received blob-like payload")
		go c.materialize(p)
	default:
		c.log.Error().Str("type", fmt.Sprintf("%T", payload)).Msg("unrecognized payload shape")
		c.dispatch(event{kind: evFault, err: &UnknownPayloadError{Payload: payload}})
	}
}

func (c *EventClient) materialize(r io.Reader) {
	data, err := io.ReadAll(r)
	if err != nil {
		c.post(event{kind: evFault, err: fmt.Errorf("sockets: materialize payload: %w", err)})
		return
	}
	c.post(event{kind: evClassified, msg: Binary(data)})
}

func (c *EventClient) deliver(m Message) {
	c.cell.mu.Lock()
	f := c.cell.onMessage
	c.cell.mu.Unlock()
	if f != nil {
		f(c, m)
	}
}
