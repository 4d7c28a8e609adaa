package sockets

// TransportHandlers are the four notification callbacks a Transport
// reports through. A transport invokes them one at a time, in delivery
// order. They are installed once, at Open time; the replaceable
// user-facing slots live on the EventClient.
type TransportHandlers struct {
	// OnOpen fires once when the server accepts the connection.
	OnOpen func()

	// OnError fires when the transport fails, before or after open.
	OnError func(err error)

	// OnClose fires exactly once, when the connection is finished for
	// good: after a clean shutdown, after a transport error, or after a
	// failed connection attempt.
	OnClose func(code int, reason string)

	// OnMessage delivers one inbound payload. The payload is one of:
	//
	//   []byte     a binary buffer
	//   string     a text message
	//   io.Reader  a blob-like payload; the client materializes it into
	//              a binary buffer asynchronously, so messages arriving
	//              in the meantime may be dispatched first
	//
	// Anything else is a classification error reported to the client's
	// on-error handler.
	OnMessage func(payload any)
}

// Transport is the raw socket primitive a client drives. The default
// implementation dials with gorilla/websocket; tests and alternative
// hosts substitute their own through Options.Opener.
type Transport interface {
	// SendText forwards a text message unmodified. It fails if the
	// transport is not in a sendable state.
	SendText(text string) error

	// SendBinary forwards a binary message unmodified, with the same
	// contract as SendText.
	SendBinary(data []byte) error

	// Close tears the connection down. The transport still reports a
	// final close notification through its handlers.
	Close() error
}

// Opener constructs a Transport connected to a URL. Open returns an
// error only if the transport itself cannot be constructed (for example
// a malformed URL); a nil error does not mean the remote peer accepted
// the connection, which is signaled later through the handlers.
type Opener interface {
	Open(url string, h TransportHandlers) (Transport, error)
}
