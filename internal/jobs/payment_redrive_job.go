package jobs

import (
	"context"
	"time"

	"farmtrade/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultRedriveSchedule runs the re-drive at the start of every minute.
	DefaultRedriveSchedule = "0 * * * * *"
	// DefaultRedriveBatch bounds the payments applied per run.
	DefaultRedriveBatch = 50

	redriveTimeout = 50 * time.Second
)

// PaymentRedriver applies recorded payments that were not applied to their orders.
type PaymentRedriver interface {
	Handle(ctx context.Context, limit int) (commands.RedriveSummary, error)
}

// PaymentRedriveJob periodically applies payments left unapplied by a failure between
// recording a payment and updating its order. Overlapping runs are skipped.
type PaymentRedriveJob struct {
	handler  PaymentRedriver
	schedule string
	batch    int
	cron     *cron.Cron
	logger   *logrus.Entry
}

func NewPaymentRedriveJob(handler PaymentRedriver, schedule string, batch int, logger *logrus.Logger) *PaymentRedriveJob {
	if schedule == "" {
		schedule = DefaultRedriveSchedule
	}
	if batch <= 0 {
		batch = DefaultRedriveBatch
	}

	entry := logger.WithField("component", "payment_redrive_job")
	return &PaymentRedriveJob{
		handler:  handler,
		schedule: schedule,
		batch:    batch,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(entry))),
		),
		logger: entry,
	}
}

// Start registers the job on its schedule. An invalid schedule is returned as an error.
func (j *PaymentRedriveJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.WithField("schedule", j.schedule).Info("payment re-drive job started")
	return nil
}

// Stop waits for a running re-drive to finish.
func (j *PaymentRedriveJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("payment re-drive job stopped")
}

func (j *PaymentRedriveJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), redriveTimeout)
	defer cancel()
	j.Run(ctx)
}

// Run performs one re-drive pass.
func (j *PaymentRedriveJob) Run(ctx context.Context) {
	summary, err := j.handler.Handle(ctx, j.batch)
	if err != nil {
		j.logger.WithError(err).Error("payment re-drive failed")
		return
	}

	if summary == (commands.RedriveSummary{}) {
		return
	}
	entry := j.logger.WithFields(logrus.Fields{
		"applied": summary.Applied,
		"skipped": summary.Skipped,
		"failed":  summary.Failed,
		"errors":  summary.Errors,
	})
	if summary.Errors > 0 {
		entry.Warn("payment re-drive finished with errors")
		return
	}
	entry.Info("payment re-drive finished")
}
