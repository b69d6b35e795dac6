package cron

import (
	"context"
	"time"

	"github.com/Dauren914/Reminder_Manager/internal/jobs"
	"github.com/Dauren914/Reminder_Manager/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartOccurrenceCronJobs wires the periodic scan and notification jobs.
// The scanner materializes occurrences for reminders that became due; the
// notifier delivers email for materialized occurrences not yet sent.
func StartOccurrenceCronJobs(scanSpec, notifySpec string, scanner *services.ScannerService, notifier *jobs.DueNotifier) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(scanSpec, func() {
		if _, err := scanner.MaterializeDueOccurrences(context.Background(), time.Now()); err != nil {
			logrus.WithError(err).Error("Occurrence scan failed")
		}
	})
	if err != nil {
		return nil, err
	}

	_, err = c.AddFunc(notifySpec, func() {
		if err := notifier.RunScan(context.Background(), time.Now()); err != nil {
			logrus.WithError(err).Error("Notification scan failed")
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
