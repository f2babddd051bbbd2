// Package notify holds the push gateways. Each one forwards a rendered
// notification to the delivery pipeline behind it: the process log, a Kafka
// topic or a RabbitMQ exchange.
package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// Envelope is the JSON document published for every push. The consumer on the
// other side talks to the push provider.
type Envelope struct {
	ID       string            `json:"id"`
	Token    string            `json:"token"`
	Audience string            `json:"audience"`
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Data     map[string]string `json:"data,omitempty"`
	SentAt   time.Time         `json:"sent_at"`
}

func newEnvelope(token actor.DeviceToken, msg notification.Message, now time.Time) Envelope {
	return Envelope{
		ID:       uuid.NewString(),
		Token:    token.String(),
		Audience: msg.Audience.String(),
		Title:    msg.Title,
		Body:     msg.Body,
		Data:     msg.Data,
		SentAt:   now.UTC(),
	}
}

func (e Envelope) marshal() ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal notification envelope: %w", err)
	}
	return b, nil
}
