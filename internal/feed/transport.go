package feed

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Transport is one stream of raw frames for a single subscription key.
// The websocket implementation is the production path; tests supply
// their own.
type Transport interface {
	// Messages returns the inbound frame channel. The channel closes
	// when the transport dies.
	Messages() <-chan []byte
	// Errors surfaces transport failures. Buffered size 1.
	Errors() <-chan error
	// Close tears the stream down.
	Close() error
}

// TransportFactory dials a fresh transport for a key. Called once on
// Subscribe and again on every reconnect attempt.
type TransportFactory func(ctx context.Context, key string) (Transport, error)

type wsTransport struct {
	conn     *websocket.Conn
	messages chan []byte
	errors   chan error
	done     chan struct{}
}

// DialWebsocket returns a TransportFactory connecting to the relay at
// rawURL with a bearer token. The key rides along as a query parameter
// so the relay can scope the stream.
func DialWebsocket(rawURL, token string) TransportFactory {
	return func(ctx context.Context, key string) (Transport, error) {
		header := http.Header{}
		if token != "" {
			header.Set("Authorization", "Bearer "+token)
		}
		dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
		conn, _, err := dialer.DialContext(ctx, rawURL+"?client_id="+key, header)
		if err != nil {
			return nil, err
		}
		t := &wsTransport{
			conn:     conn,
			messages: make(chan []byte, 64),
			errors:   make(chan error, 1),
			done:     make(chan struct{}),
		}
		go t.readLoop()
		return t, nil
	}
}

func (t *wsTransport) readLoop() {
	defer close(t.messages)
	for {
		_, data, err := t.conn.ReadMessage()
		if err != nil {
			select {
			case t.errors <- err:
			case <-t.done:
			}
			return
		}
		select {
		case t.messages <- data:
		case <-t.done:
			return
		}
	}
}

func (t *wsTransport) Messages() <-chan []byte { return t.messages }

func (t *wsTransport) Errors() <-chan error { return t.errors }

func (t *wsTransport) Close() error {
	close(t.done)
	_ = t.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	return t.conn.Close()
}
