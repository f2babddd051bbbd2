package notify

import (
	"context"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the gateway uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaGateway publishes one message per push, keyed by the device token so
// pushes to the same device stay ordered within a partition.
type KafkaGateway struct {
	writer MessageWriter
	now    func() time.Time
}

var _ ports.NotificationGateway = (*KafkaGateway)(nil)

func NewKafkaGateway(writer MessageWriter) *KafkaGateway {
	return &KafkaGateway{writer: writer, now: time.Now}
}

// NewKafkaWriter returns a writer for topic that balances by key.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

func (g *KafkaGateway) Send(ctx context.Context, token actor.DeviceToken, msg notification.Message) error {
	if err := token.Validate(); err != nil {
		return err
	}

	envelope := newEnvelope(token, msg, g.now())
	body, err := envelope.marshal()
	if err != nil {
		return err
	}

	err = g.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(token.String()),
		Value: body,
		Headers: []kafka.Header{
			{Key: "audience", Value: []byte(envelope.Audience)},
		},
		Time: envelope.SentAt,
	})
	if err != nil {
		return fmt.Errorf("publish notification to kafka: %w", err)
	}
	return nil
}
