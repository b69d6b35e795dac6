package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/Dauren914/Reminder_Manager/internal/services"
	"github.com/Dauren914/Reminder_Manager/pkg/email"
	"github.com/sirupsen/logrus"
)

// DueNotifier delivers notifications for due occurrences that have not been
// notified yet, then marks each one sent. A failed send leaves the flag
// unset so the next run retries that occurrence.
type DueNotifier struct {
	OccurrenceService *services.OccurrenceService
	EmployeeService   *services.EmployeeService
	Sender            email.Sender
}

// NewDueNotifier creates a new instance of DueNotifier.
func NewDueNotifier(occurrenceService *services.OccurrenceService, employeeService *services.EmployeeService, sender email.Sender) *DueNotifier {
	return &DueNotifier{
		OccurrenceService: occurrenceService,
		EmployeeService:   employeeService,
		Sender:            sender,
	}
}

// RunScan emails the owner of every due, not-yet-notified occurrence.
func (d *DueNotifier) RunScan(ctx context.Context, now time.Time) error {
	due, err := d.OccurrenceService.FindDueBefore(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to fetch due occurrences: %w", err)
	}

	for _, item := range due {
		if item.Occurrence.IsNotificationSent {
			continue
		}

		employee, err := d.EmployeeService.GetEmployee(ctx, item.Reminder.EmployeeID)
		if err != nil {
			logrus.WithError(err).WithField("employee_id", item.Reminder.EmployeeID.Hex()).Warn("Failed to fetch employee for notification")
			continue
		}
		if employee == nil {
			logrus.WithField("reminder_id", item.Reminder.ID.Hex()).Warn("Reminder owner no longer exists, skipping notification")
			continue
		}

		subject := "Reminder due"
		body := fmt.Sprintf("Your reminder %q was due at %s.", item.Reminder.Text, item.Occurrence.Timestamp.Format(time.RFC1123))
		if err := d.Sender.Send(employee.Email, subject, body); err != nil {
			logrus.WithError(err).WithField("occurrence_id", item.Occurrence.ID.Hex()).Warn("Failed to send reminder notification")
			continue
		}

		if err := d.OccurrenceService.MarkNotified(ctx, item.Occurrence.ID); err != nil {
			logrus.WithError(err).WithField("occurrence_id", item.Occurrence.ID.Hex()).Error("Failed to mark occurrence notified")
			continue
		}

		logrus.WithFields(logrus.Fields{
			"occurrence_id": item.Occurrence.ID.Hex(),
			"employee_id":   employee.ID.Hex(),
		}).Info("Reminder notification sent")
	}

	return nil
}
