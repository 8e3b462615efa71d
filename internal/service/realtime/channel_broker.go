package realtime

import (
	"context"

	"pigeon_chat_server/internal/dao/db/repository"
	myredis "pigeon_chat_server/internal/dao/redis"
	"pigeon_chat_server/pkg/constants"

	"go.uber.org/zap"
)

// ChannelBroker is the single-instance broker. Frames go straight from
// Publish to the dispatch loop over a buffered channel, no external
// queue involved.
type ChannelBroker struct {
	hub

	Transmit chan []byte
	Login    chan *UserConn
	Logout   chan *UserConn
}

// NewChannelBroker wires the in-process broker.
func NewChannelBroker(repos *repository.Repositories, cache myredis.AsyncCacheService) *ChannelBroker {
	b := &ChannelBroker{
		Transmit: make(chan []byte, constants.CHANNEL_SIZE),
		Login:    make(chan *UserConn, constants.CHANNEL_SIZE),
		Logout:   make(chan *UserConn, constants.CHANNEL_SIZE),
	}
	b.hub.repos = repos
	b.hub.cache = cache
	return b
}

// Start runs the event loop: login/logout bookkeeping plus frame
// dispatch. Returns when any channel closes.
func (b *ChannelBroker) Start() {
	for {
		select {
		case client, ok := <-b.Login:
			if !ok {
				return
			}
			if client == nil {
				continue
			}
			b.addClient(client)

		case client, ok := <-b.Logout:
			if !ok {
				return
			}
			if client == nil {
				continue
			}
			b.removeClient(client)

		case data, ok := <-b.Transmit:
			if !ok {
				return
			}
			b.dispatch(data)
		}
	}
}

// Publish implements MessageBroker.
func (b *ChannelBroker) Publish(ctx context.Context, msg []byte) error {
	b.Transmit <- msg
	return nil
}

// RegisterClient implements MessageBroker.
func (b *ChannelBroker) RegisterClient(client *UserConn) {
	b.Login <- client
}

// UnregisterClient implements MessageBroker.
func (b *ChannelBroker) UnregisterClient(client *UserConn) {
	b.Logout <- client
}

// GetClient implements MessageBroker.
func (b *ChannelBroker) GetClient(userId string) *UserConn {
	return b.getClient(userId)
}

// GetMessageRepo implements MessageBroker.
func (b *ChannelBroker) GetMessageRepo() repository.MessageRepository {
	if b.repos == nil {
		return nil
	}
	return b.repos.Message
}

// Close shuts the broker channels down.
func (b *ChannelBroker) Close() {
	close(b.Login)
	close(b.Logout)
	close(b.Transmit)
	zap.L().Info("channel broker closed")
}

var _ MessageBroker = (*ChannelBroker)(nil)
