// Package realtime implements the realtime delivery path: WebSocket
// gateway, event dispatch, and fan-out to chat participants through a
// pluggable message broker.
package realtime

import (
	"context"

	"pigeon_chat_server/internal/dao/db/repository"
)

// Wire event names. Inbound events arrive on the socket; outbound
// events are pushed to subscribed clients.
const (
	EventSendMessage  = "send-message"
	EventMessage      = "message"
	EventTypingStart  = "typing-start"
	EventTypingStop   = "typing-stop"
	EventUpdateStatus = "update-status"
	EventReadReceipt  = "read-receipt"
)

// MessageBroker decouples the gateway from the fan-out implementation.
// ChannelBroker runs in-process; KafkaBroker routes through a topic so
// multiple server instances see every message.
type MessageBroker interface {
	// Publish hands a raw inbound frame to the broker.
	Publish(ctx context.Context, msg []byte) error
	// RegisterClient adds a connection to the online roster.
	RegisterClient(client *UserConn)
	// UnregisterClient removes a connection from the online roster.
	UnregisterClient(client *UserConn)
	// GetClient returns the connection for a user, or nil.
	GetClient(userId string) *UserConn
	// Start runs the consume loop until Close.
	Start()
	// Close releases broker resources.
	Close()
	// GetMessageRepo exposes the message repository to the gateway's
	// write loop for the unsent→sent transition.
	GetMessageRepo() repository.MessageRepository
}

// GlobalBroker is set once in main according to the configured mode.
var GlobalBroker MessageBroker
