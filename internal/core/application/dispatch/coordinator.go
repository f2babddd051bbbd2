// Package dispatch turns notification tasks into deliveries. It resolves each
// task's recipient selector into device tokens at call time, sends one message
// per token through the gateway and reports per-recipient outcomes. Dispatch
// never fails its caller: gateway and lookup errors end up in the Report.
package dispatch

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	tracerName         = "fooddelivery/dispatch"
	defaultConcurrency = 8
)

// Recipients is the part of the actor directory the coordinator reads.
type Recipients interface {
	TokenFor(ctx context.Context, actorID kernel.UUID) (actor.DeviceToken, bool, error)
	ActorsWithRole(ctx context.Context, role actor.Role) ([]kernel.UUID, error)
}

// Coordinator is safe for concurrent use.
type Coordinator struct {
	recipients  Recipients
	gateway     ports.NotificationGateway
	inbox       ports.NotificationInbox
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer
	concurrency int
	now         func() time.Time
}

type Option func(*Coordinator)

// WithInbox records every successful delivery in inbox.
func WithInbox(inbox ports.NotificationInbox) Option {
	return func(c *Coordinator) { c.inbox = inbox }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Coordinator) { c.metrics = m }
}

// WithConcurrency bounds the number of sends in flight per Dispatch call.
// Values below one fall back to the default.
func WithConcurrency(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

func NewCoordinator(recipients Recipients, gateway ports.NotificationGateway, opts ...Option) *Coordinator {
	c := &Coordinator{
		recipients:  recipients,
		gateway:     gateway,
		logger:      slog.Default(),
		tracer:      otel.Tracer(tracerName),
		concurrency: defaultConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "dispatch")
	return c
}

// send is one resolved (recipient, token, task) unit.
type send struct {
	actorID kernel.UUID
	token   actor.DeviceToken
	task    notification.Task
}

// Dispatch delivers tasks and returns what happened to each recipient.
//
// Broadcast selectors are expanded against the directory on every call. Sends
// run concurrently up to the configured limit on a context that ignores the
// caller's cancellation, so an in-flight send always completes on its own.
func (c *Coordinator) Dispatch(ctx context.Context, tasks []notification.Task) Report {
	var report Report
	if len(tasks) == 0 {
		return report
	}

	ctx, span := c.tracer.Start(ctx, "dispatch.Dispatch", trace.WithAttributes(
		attribute.Int("dispatch.tasks", len(tasks)),
	))
	defer span.End()
	started := c.now()

	detached := context.WithoutCancel(ctx)

	var sends []send
	for _, task := range tasks {
		resolved, failures := c.resolve(detached, task)
		sends = append(sends, resolved...)
		for _, d := range failures {
			report.add(d)
		}
	}

	results := make([]Delivery, len(sends))
	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, s := range sends {
		g.Go(func() error {
			results[i] = c.deliver(detached, s)
			return nil
		})
	}
	_ = g.Wait()

	for _, d := range results {
		report.add(d)
	}
	for _, d := range report.Deliveries {
		c.observe(d)
	}
	if c.metrics != nil {
		c.metrics.DispatchDuration.Observe(c.now().Sub(started).Seconds())
	}

	span.SetAttributes(
		attribute.Int("dispatch.attempted", report.Attempted),
		attribute.Int("dispatch.succeeded", report.Succeeded),
		attribute.Int("dispatch.failed", report.Failed),
		attribute.Int("dispatch.skipped", report.Skipped),
	)
	if report.Failed > 0 {
		span.SetStatus(codes.Error, "some notifications were not delivered")
	}

	c.logger.InfoContext(ctx, "notifications dispatched",
		"tasks", len(tasks),
		"attempted", report.Attempted,
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"skipped", report.Skipped,
	)
	return report
}

// resolve expands task into sends. Recipients without a token and lookup
// failures are returned as finished deliveries.
func (c *Coordinator) resolve(ctx context.Context, task notification.Task) ([]send, []Delivery) {
	switch task.Recipient.Kind() {
	case notification.SingleActor:
		s, d, ok := c.resolveActor(ctx, task, task.Recipient.ActorID())
		if !ok {
			return nil, []Delivery{d}
		}
		return []send{s}, nil

	case notification.RoleBroadcast:
		ids, err := c.recipients.ActorsWithRole(ctx, task.Recipient.Role())
		if err != nil {
			return nil, []Delivery{c.failure(task, kernel.UUID{}, err)}
		}
		var (
			sends []send
			done  []Delivery
		)
		for _, id := range ids {
			s, d, ok := c.resolveActor(ctx, task, id)
			if !ok {
				done = append(done, d)
				continue
			}
			sends = append(sends, s)
		}
		return sends, done

	default:
		return nil, []Delivery{c.failure(task, kernel.UUID{}, errUnknownSelector)}
	}
}

func (c *Coordinator) resolveActor(ctx context.Context, task notification.Task, actorID kernel.UUID) (send, Delivery, bool) {
	token, ok, err := c.recipients.TokenFor(ctx, actorID)
	if err != nil {
		return send{}, c.failure(task, actorID, err), false
	}
	if !ok {
		return send{}, Delivery{
			Recipient: task.Recipient,
			ActorID:   actorID,
			Title:     task.Title,
			Outcome:   Skipped,
		}, false
	}
	return send{actorID: actorID, token: token, task: task}, Delivery{}, true
}

func (c *Coordinator) deliver(ctx context.Context, s send) Delivery {
	ctx, span := c.tracer.Start(ctx, "dispatch.Send", trace.WithAttributes(
		attribute.String("notification.recipient", s.task.Recipient.String()),
		attribute.String("notification.actor_id", s.actorID.String()),
		attribute.String("order.id", s.task.Metadata.OrderID.String()),
	))
	defer span.End()

	if err := c.gateway.Send(ctx, s.token, notification.MessageFor(s.task)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return c.failure(s.task, s.actorID, err)
	}

	if c.inbox != nil {
		entry := notification.NewInboxEntry(s.actorID, s.task, c.now())
		if err := c.inbox.Append(ctx, entry); err != nil {
			c.logger.WarnContext(ctx, "failed to record notification in inbox",
				"actor_id", s.actorID.String(), "order_id", entry.OrderID.String(), "error", err)
		}
	}

	return Delivery{
		Recipient: s.task.Recipient,
		ActorID:   s.actorID,
		Title:     s.task.Title,
		Outcome:   Succeeded,
	}
}

func (c *Coordinator) failure(task notification.Task, actorID kernel.UUID, cause error) Delivery {
	return Delivery{
		Recipient: task.Recipient,
		ActorID:   actorID,
		Title:     task.Title,
		Outcome:   Failed,
		Err:       &DeliveryError{Recipient: task.Recipient, ActorID: actorID, Cause: cause},
	}
}

func (c *Coordinator) observe(d Delivery) {
	if d.Outcome == Failed {
		c.logger.Warn("notification not delivered",
			"recipient", d.Recipient.String(),
			"title", d.Title,
			"error", d.Err,
		)
	}
	if c.metrics != nil {
		c.metrics.NotificationsTotal.WithLabelValues(d.Recipient.Role().String(), string(d.Outcome)).Inc()
	}
}
