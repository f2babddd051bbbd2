package notify

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/ports"
)

// LogGateway writes every push to the log instead of sending it. It is the
// default for local runs.
type LogGateway struct {
	logger *slog.Logger
}

var _ ports.NotificationGateway = (*LogGateway)(nil)

func NewLogGateway(logger *slog.Logger) *LogGateway {
	return &LogGateway{logger: logger.With("component", "LogGateway")}
}

func (g *LogGateway) Send(ctx context.Context, token actor.DeviceToken, msg notification.Message) error {
	if err := token.Validate(); err != nil {
		return err
	}
	g.logger.InfoContext(ctx, "push notification",
		"audience", msg.Audience,
		"title", msg.Title,
		"body", msg.Body,
		"order_id", msg.Data[notification.MetaOrderID],
	)
	return nil
}
