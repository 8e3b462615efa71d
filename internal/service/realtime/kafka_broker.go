package realtime

import (
	"context"
	"time"

	myconfig "pigeon_chat_server/internal/config"
	"pigeon_chat_server/internal/dao/db/repository"
	myredis "pigeon_chat_server/internal/dao/redis"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaClient owns the raw writer/reader pair. Pure infrastructure, no
// chat logic.
type KafkaClient struct {
	Producer *kafka.Writer
	Consumer *kafka.Reader
}

// NewKafkaClient builds the client from the kafka config section.
func NewKafkaClient() *KafkaClient {
	kafkaConfig := myconfig.GetConfig().KafkaConfig
	return &KafkaClient{
		Producer: &kafka.Writer{
			Addr:                   kafka.TCP(kafkaConfig.HostPort),
			Topic:                  kafkaConfig.ChatTopic,
			Balancer:               &kafka.Hash{},
			WriteTimeout:           kafkaConfig.Timeout * time.Second,
			RequiredAcks:           kafka.RequireNone,
			AllowAutoTopicCreation: false,
		},
		Consumer: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{kafkaConfig.HostPort},
			Topic:          kafkaConfig.ChatTopic,
			CommitInterval: kafkaConfig.Timeout * time.Second,
			GroupID:        "pigeon_chat",
			StartOffset:    kafka.LastOffset,
		}),
	}
}

// SendMessage writes one frame to the chat topic.
func (k *KafkaClient) SendMessage(ctx context.Context, key, value []byte) error {
	return k.Producer.WriteMessages(ctx, kafka.Message{Key: key, Value: value})
}

// Close releases producer and consumer.
func (k *KafkaClient) Close() {
	if err := k.Producer.Close(); err != nil {
		zap.L().Error("close kafka producer failed", zap.Error(err))
	}
	if err := k.Consumer.Close(); err != nil {
		zap.L().Error("close kafka consumer failed", zap.Error(err))
	}
}

// KafkaBroker routes frames through a Kafka topic so every server
// instance in the group consumes them. Registration stays local: each
// instance fans out only to its own sockets.
type KafkaBroker struct {
	hub

	client *KafkaClient
	cancel context.CancelFunc
}

// NewKafkaBroker wires the distributed broker.
func NewKafkaBroker(repos *repository.Repositories, cache myredis.AsyncCacheService) *KafkaBroker {
	b := &KafkaBroker{client: NewKafkaClient()}
	b.hub.repos = repos
	b.hub.cache = cache
	return b
}

// Start consumes the chat topic until Close.
func (b *KafkaBroker) Start() {
	consumeCtx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	for {
		kafkaMessage, err := b.client.Consumer.ReadMessage(consumeCtx)
		if err != nil {
			if consumeCtx.Err() != nil {
				return
			}
			zap.L().Error("kafka read failed", zap.Error(err))
			continue
		}
		b.dispatch(kafkaMessage.Value)
	}
}

// Publish implements MessageBroker by producing to the topic.
func (b *KafkaBroker) Publish(ctx context.Context, msg []byte) error {
	return b.client.SendMessage(ctx, nil, msg)
}

// RegisterClient implements MessageBroker.
func (b *KafkaBroker) RegisterClient(client *UserConn) {
	b.addClient(client)
}

// UnregisterClient implements MessageBroker.
func (b *KafkaBroker) UnregisterClient(client *UserConn) {
	b.removeClient(client)
}

// GetClient implements MessageBroker.
func (b *KafkaBroker) GetClient(userId string) *UserConn {
	return b.getClient(userId)
}

// GetMessageRepo implements MessageBroker.
func (b *KafkaBroker) GetMessageRepo() repository.MessageRepository {
	if b.repos == nil {
		return nil
	}
	return b.repos.Message
}

// Close stops the consume loop and releases kafka resources.
func (b *KafkaBroker) Close() {
	if b.cancel != nil {
		b.cancel()
	}
	b.client.Close()
	zap.L().Info("kafka broker closed")
}

var _ MessageBroker = (*KafkaBroker)(nil)
