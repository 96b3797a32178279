package messaging

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/finchmedia/finch/pkg/config"
	"github.com/finchmedia/finch/pkg/interfaces"
)

// MessageHandler processes one raw message from the encoder topic.
type MessageHandler func(ctx context.Context, raw []byte) error

// KafkaConsumer consumes the encoder callback topic through a consumer
// group and hands each payload to the registered handler. A handler
// failure is logged and the offset is committed anyway: encoder
// messages that cannot be applied now will not apply better on
// redelivery.
type KafkaConsumer struct {
	group   sarama.ConsumerGroup
	topic   string
	handler MessageHandler
	logger  interfaces.Logger
}

// NewKafkaConsumer creates a consumer group bound to the callback topic.
func NewKafkaConsumer(cfg config.KafkaConfig, handler MessageHandler, logger interfaces.Logger) (*KafkaConsumer, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.Consumer.Return.Errors = true
	saramaCfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaCfg)
	if err != nil {
		return nil, fmt.Errorf("creating consumer group: %w", err)
	}

	return &KafkaConsumer{
		group:   group,
		topic:   cfg.Topic,
		handler: handler,
		logger:  logger,
	}, nil
}

// Start consumes until the context is cancelled.
func (c *KafkaConsumer) Start(ctx context.Context) error {
	topics := []string{c.topic}

	for {
		if err := c.group.Consume(ctx, topics, c); err != nil {
			return fmt.Errorf("consuming messages: %w", err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// ConsumeClaim implements sarama.ConsumerGroupHandler.
func (c *KafkaConsumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		if err := c.handler(session.Context(), message.Value); err != nil {
			c.logger.Error("Failed to handle encoder message",
				interfaces.String("topic", message.Topic),
				interfaces.Int("partition", int(message.Partition)),
				interfaces.Error(err))
		}
		session.MarkMessage(message, "")
	}
	return nil
}

// Setup implements sarama.ConsumerGroupHandler.
func (c *KafkaConsumer) Setup(sarama.ConsumerGroupSession) error { return nil }

// Cleanup implements sarama.ConsumerGroupHandler.
func (c *KafkaConsumer) Cleanup(sarama.ConsumerGroupSession) error { return nil }

// Close closes the consumer group.
func (c *KafkaConsumer) Close() error {
	return c.group.Close()
}
