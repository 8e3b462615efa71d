// Package feed is the client-side subscription layer over the realtime
// socket. It keeps one ordered message list per subscription key,
// suppresses duplicate deliveries, and reconciles optimistic local
// entries with their server echoes. Delivery is best-effort; the only
// mitigation for races is the timing heuristic in reconcile.
package feed

import (
	"time"
)

// EchoMatchWindow bounds how far apart an optimistic entry and its
// server echo may sit and still be treated as the same message.
const EchoMatchWindow = 2 * time.Second

const (
	// DefaultRetryCap is how many reconnect attempts run before the
	// error is surfaced and the subscription stops.
	DefaultRetryCap = 5
	// DefaultRetryDelay is the fixed wait between reconnect attempts.
	DefaultRetryDelay = 3 * time.Second
)

// Message is one entry in a subscription's ordered list.
type Message struct {
	Id          string    `json:"id"`
	ChatId      string    `json:"chat_id"`
	ClientMsgId string    `json:"client_msg_id"`
	SenderId    string    `json:"send_id"`
	SenderName  string    `json:"send_name"`
	Content     string    `json:"content"`
	Url         string    `json:"url"`
	SentAt      time.Time `json:"-"`
	// Pending marks an optimistic local entry awaiting its echo.
	Pending bool `json:"-"`
}

// Callbacks is the per-key callback set. Re-subscribing on the same key
// swaps the set without touching the underlying transport.
type Callbacks struct {
	// OnMessages receives the full ordered list after each change.
	OnMessages func(key string, messages []Message)
	// OnEvent receives raw non-message frames (typing, presence).
	OnEvent func(key string, frame []byte)
	// OnError fires once the retry cap is exhausted; the subscription
	// has stopped when it is called.
	OnError func(key string, err error)
}
