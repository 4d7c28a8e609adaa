package sockets

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected is returned by send calls made before the open
	// notification has fired, or after the connection went away.
	ErrNotConnected = errors.New("sockets: not connected")

	// ErrClosed is returned by send calls made after Close.
	ErrClosed = errors.New("sockets: client closed")
)

// UnknownPayloadError reports an inbound payload whose dynamic type is
// not part of the transport contract (not []byte, string or io.Reader).
// It is delivered to the on-error handler; it does not tear down the
// connection and does not move the status to StatusError.
type UnknownPayloadError struct {
	Payload any
}

func (e *UnknownPayloadError) Error() string {
	return fmt.Sprintf("sockets: unrecognized payload type %T", e.Payload)
}
