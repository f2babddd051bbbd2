// Package jobs provides scheduled background tasks for the ordering service.
//
// Jobs are built on github.com/robfig/cron/v3 with a seconds field, so every
// schedule has six fields.
//
// # Available Jobs
//
// UnclaimedOrderReminderJob re-broadcasts "Order Available" to couriers for
// confirmed orders nobody has claimed. It only reads orders; claiming still
// goes through the claim use case.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(reminderHandler, "0 * * * * *", 2*time.Minute, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A pass with nothing to remind about ends with commands.ErrNoUnclaimedOrders
// and is not logged. Other failures are logged and the next tick retries.
// Overlapping ticks are skipped while a pass is still running.
package jobs
