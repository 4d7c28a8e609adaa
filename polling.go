package sockets

import "sync"

// PollingClient wraps an EventClient and buffers incoming messages for
// consumption on a fixed-interval loop (a game tick) instead of pushing
// them through callbacks.
type PollingClient struct {
	url string

	// Client is the underlying EventClient, kept reachable for lower
	// level control. Replacing its handlers discards the PollingClient's
	// own bookkeeping.
	Client *EventClient

	mu     sync.Mutex
	status ConnectionStatus
	data   []Message
}

// NewPolling creates a PollingClient and starts connecting to a
// websocket URL. As with New, a nil error does not mean the connection
// has succeeded yet; watch Status.
func NewPolling(url string) (*PollingClient, error) {
	return NewPollingWithOptions(url, Options{})
}

// NewPollingWithOptions is NewPolling with an explicit transport and
// logger.
func NewPollingWithOptions(url string, opts Options) (*PollingClient, error) {
	client, err := NewWithOptions(url, opts)
	if err != nil {
		return nil, err
	}

	p := &PollingClient{
		url:    url,
		Client: client,
		status: StatusConnecting,
	}

	client.SetOnConnection(func(*EventClient) {
		p.mu.Lock()
		p.status = StatusConnected
		p.mu.Unlock()
	})
	client.SetOnError(func(error) {
		p.mu.Lock()
		p.status = StatusError
		p.mu.Unlock()
	})
	client.SetOnClose(func(int, string) {
		p.mu.Lock()
		// An error already recorded for this teardown wins.
		if p.status != StatusError {
			p.status = StatusDisconnected
		}
		p.mu.Unlock()
	})
	client.SetOnMessage(func(_ *EventClient, m Message) {
		p.mu.Lock()
		p.data = append(p.data, m)
		p.mu.Unlock()
	})

	return p, nil
}

// Receive returns every message received since Receive was last called
// (or since construction, for the first call), oldest first, and clears
// the buffer. With nothing pending it returns an empty slice.
func (p *PollingClient) Receive() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	data := p.data
	p.data = nil
	return data
}

// Status returns a snapshot of the current connection status.
func (p *PollingClient) Status() ConnectionStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// URL returns the URL this client was created with.
func (p *PollingClient) URL() string { return p.url }

// SendString sends a text message, delegating to the inner EventClient.
func (p *PollingClient) SendString(text string) error {
	return p.Client.SendString(text)
}

// SendBinary sends a binary message, delegating to the inner EventClient.
func (p *PollingClient) SendBinary(data []byte) error {
	return p.Client.SendBinary(data)
}

// Close tears down the inner EventClient.
func (p *PollingClient) Close() error {
	return p.Client.Close()
}
