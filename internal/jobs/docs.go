// Package jobs provides scheduled background tasks for order fulfillment.
//
// Jobs are cron-based (github.com/robfig/cron/v3, with a seconds field) and log through
// logrus with a per-job component field.
//
// # Available Jobs
//
//  1. PaymentRedriveJob - applies completed payments whose application to the order
//     did not happen after they were recorded. Schedule from PAYMENT_REDRIVE_SCHEDULE,
//     every minute by default.
//
// # Usage
//
//	redrive := jobs.NewPaymentRedriveJob(redriveHandler, cfg.PaymentRedriveSchedule, 0, logger)
//	jobManager := jobs.NewJobManager(redrive)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - a failed run is logged and retried on the next tick
//   - a run still in progress causes the next tick to be skipped
//   - failed job starts stop any already running jobs
package jobs
