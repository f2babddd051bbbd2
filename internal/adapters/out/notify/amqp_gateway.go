package notify

import (
	"context"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher is the part of *amqp.Channel the gateway uses.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPGateway publishes pushes to a topic exchange. The routing key is
// "push.<audience>" so each client application can bind its own queue.
type AMQPGateway struct {
	publisher Publisher
	exchange  string
	now       func() time.Time
}

var _ ports.NotificationGateway = (*AMQPGateway)(nil)

func NewAMQPGateway(publisher Publisher, exchange string) *AMQPGateway {
	return &AMQPGateway{publisher: publisher, exchange: exchange, now: time.Now}
}

// DeclareExchange creates the durable topic exchange if it does not exist.
func DeclareExchange(ch *amqp.Channel, exchange string) error {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return nil
}

func RoutingKey(audience actor.Role) string {
	return "push." + audience.String()
}

func (g *AMQPGateway) Send(ctx context.Context, token actor.DeviceToken, msg notification.Message) error {
	if err := token.Validate(); err != nil {
		return err
	}

	envelope := newEnvelope(token, msg, g.now())
	body, err := envelope.marshal()
	if err != nil {
		return err
	}

	key := RoutingKey(msg.Audience)
	err = g.publisher.PublishWithContext(ctx, g.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    envelope.ID,
		Timestamp:    envelope.SentAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to %s/%s: %w", g.exchange, key, err)
	}
	return nil
}
