package sockets

// MessageKind discriminates the two payload forms a Message can carry.
type MessageKind int

const (
	// TextMessage is a UTF-8 text message.
	TextMessage MessageKind = iota
	// BinaryMessage is a raw byte message.
	BinaryMessage
)

func (k MessageKind) String() string {
	if k == BinaryMessage {
		return "binary"
	}
	return "text"
}

// Message is one classified inbound websocket message. Exactly one of
// Text or Data is meaningful, selected by Kind. Messages are produced by
// the EventClient's classification step and are not modified afterwards.
type Message struct {
	Kind MessageKind
	Text string
	Data []byte
}

// Text builds a text message.
func Text(s string) Message {
	return Message{Kind: TextMessage, Text: s}
}

// Binary builds a binary message.
func Binary(p []byte) Message {
	return Message{Kind: BinaryMessage, Data: p}
}

// IsText reports whether the message carries text.
func (m Message) IsText() bool { return m.Kind == TextMessage }

// IsBinary reports whether the message carries bytes.
func (m Message) IsBinary() bool { return m.Kind == BinaryMessage }
