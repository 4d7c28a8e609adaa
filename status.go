package sockets

// ConnectionStatus describes where a client is in its connection
// lifecycle. A client starts at StatusConnecting and never returns to it;
// the other three states are final for the underlying transport. A new
// connection attempt means a new client.
type ConnectionStatus int

const (
	// StatusConnecting means the connection to the server has not been
	// accepted (or rejected) yet.
	StatusConnecting ConnectionStatus = iota
	// StatusConnected means the server accepted the connection.
	StatusConnected
	// StatusError means the connection was lost due to a transport error.
	// A close notification after an error does not change the status.
	StatusError
	// StatusDisconnected means the connection closed without an error.
	StatusDisconnected
)

func (s ConnectionStatus) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusError:
		return "error"
	case StatusDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}
