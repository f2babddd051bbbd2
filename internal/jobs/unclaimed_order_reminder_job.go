package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultReminderSchedule fires at second zero of every minute.
const DefaultReminderSchedule = "0 * * * * *"

// UnclaimedOrderReminder is the use case the reminder job drives.
type UnclaimedOrderReminder interface {
	Handle(ctx context.Context, cmd commands.RemindUnclaimedOrdersCommand) (commands.ReminderResult, error)
}

// UnclaimedOrderReminderJob periodically re-broadcasts confirmed orders that
// no courier has claimed yet.
type UnclaimedOrderReminderJob struct {
	handler  UnclaimedOrderReminder
	schedule string
	minAge   time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewUnclaimedOrderReminderJob creates the job. schedule is a six-field cron
// expression (seconds first); an empty schedule means DefaultReminderSchedule.
// Orders younger than minAge are left alone.
func NewUnclaimedOrderReminderJob(
	handler UnclaimedOrderReminder,
	schedule string,
	minAge time.Duration,
	logger *slog.Logger,
) *UnclaimedOrderReminderJob {
	if schedule == "" {
		schedule = DefaultReminderSchedule
	}
	return &UnclaimedOrderReminderJob{
		handler:  handler,
		schedule: schedule,
		minAge:   minAge,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "unclaimed_order_reminder_job"),
	}
}

// Start registers the job with its schedule and starts the scheduler.
func (j *UnclaimedOrderReminderJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Unclaimed order reminder job started", "schedule", j.schedule)
	return nil
}

// Run performs one reminder pass.
func (j *UnclaimedOrderReminderJob) Run(ctx context.Context) {
	cmd, err := commands.NewRemindUnclaimedOrdersCommand(j.minAge)
	if err != nil {
		j.logger.ErrorContext(ctx, "Unclaimed order reminder job misconfigured", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		if !errors.Is(err, commands.ErrNoUnclaimedOrders) {
			j.logger.ErrorContext(ctx, "Unclaimed order reminder job failed", "error", err)
		}
		return
	}

	j.logger.InfoContext(ctx, "Reminded couriers about unclaimed orders",
		"orders", len(result.Orders),
		"attempted", result.Report.Attempted,
		"failed", result.Report.Failed,
		"skipped", result.Report.Skipped,
	)
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *UnclaimedOrderReminderJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Unclaimed order reminder job stopped")
}
