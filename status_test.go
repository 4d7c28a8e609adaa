package sockets

import "testing"

func TestConnectionStatusString(t *testing.T) {
	tests := []struct {
		status ConnectionStatus
		want   string
	}{
		{StatusConnecting, "connecting"},
		{StatusConnected, "connected"},
		{StatusError, "error"},
		{StatusDisconnected, "disconnected"},
		{ConnectionStatus(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.status), got, tt.want)
		}
	}
}

func TestMessageKinds(t *testing.T) {
	m := Text("hi")
	if !m.IsText() || m.IsBinary() || m.Kind.String() != "text" {
		t.Errorf("Text(hi) misclassified: %+v", m)
	}

	b := Binary([]byte{1})
	if !b.IsBinary() || b.IsText() || b.Kind.String() != "binary" {
		t.Errorf("Binary([1]) misclassified: %+v", b)
	}
}
