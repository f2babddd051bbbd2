package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager starts and stops every scheduled job of the service together.
type JobManager struct {
	reminderJob *UnclaimedOrderReminderJob
}

func NewJobManager(
	reminder UnclaimedOrderReminder,
	reminderSchedule string,
	reminderMinAge time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		reminderJob: NewUnclaimedOrderReminderJob(reminder, reminderSchedule, reminderMinAge, logger),
	}
}

// StartAll fails on the first job whose schedule cannot be registered.
func (jm *JobManager) StartAll() error {
	if err := jm.reminderJob.Start(); err != nil {
		return fmt.Errorf("start unclaimed order reminder job: %w", err)
	}
	return nil
}

// StopAll blocks until running passes have finished.
func (jm *JobManager) StopAll() {
	jm.reminderJob.Stop()
}
