package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dauren914/Reminder_Manager/internal/recurrence"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScannerService decides which reminders are due for a new occurrence.
// Computing due timestamps and materializing occurrences are deliberately
// separate steps: compute is a pure read, so a retried or concurrent scan
// can never double-create an occurrence (the store's uniqueness on
// (reminder_id, timestamp) covers the race between replicas).
type ScannerService struct {
	reminders   ReminderStore
	occurrences OccurrenceStore
}

// NewScannerService creates a new instance of ScannerService.
func NewScannerService(reminders ReminderStore, occurrences OccurrenceStore) *ScannerService {
	return &ScannerService{
		reminders:   reminders,
		occurrences: occurrences,
	}
}

// ComputeNextOccurrences returns the reminders due for a new occurrence at
// the given reference time, mapped to the timestamp that occurrence should
// carry. Recurring reminders that never fired are due at their base date;
// ones that fired are due one interval past their latest occurrence.
// Non-recurring reminders are due at their base date, once, only while no
// occurrence exists.
//
// A reminder with a broken recurrence configuration is logged and skipped,
// never aborting the scan. Storage errors propagate unchanged.
func (s *ScannerService) ComputeNextOccurrences(ctx context.Context, now time.Time) (map[primitive.ObjectID]time.Time, error) {
	items, err := s.reminders.ListRemindersWithLastOccurrence(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders for scan: %w", err)
	}

	due := make(map[primitive.ObjectID]time.Time)
	for _, item := range items {
		reminder := item.Reminder

		if !reminder.IsRecurring {
			// One-shot: fires at most once, at its own date.
			if item.LastOccurredAt == nil && !reminder.Date.After(now) {
				due[reminder.ID] = reminder.Date
			}
			continue
		}

		var next time.Time
		if item.LastOccurredAt == nil {
			next = reminder.Date
		} else {
			next, err = recurrence.NextOccurrence(reminder.RecurrenceFrequency, reminder.RecurrenceInterval, *item.LastOccurredAt)
			if err != nil {
				logrus.WithError(err).WithField("reminder_id", reminder.ID.Hex()).Warn("Skipping reminder with invalid recurrence configuration")
				continue
			}
		}

		if !next.After(now) {
			due[reminder.ID] = next
		}
	}

	return due, nil
}

// MaterializeDueOccurrences computes the due set and creates one occurrence
// per entry. Returns the number of entries processed. Safe to re-run: a
// previous partial run's occurrences are absorbed as duplicate no-ops, and
// the next compute naturally advances past them.
func (s *ScannerService) MaterializeDueOccurrences(ctx context.Context, now time.Time) (int, error) {
	due, err := s.ComputeNextOccurrences(ctx, now)
	if err != nil {
		return 0, err
	}

	created := 0
	for reminderID, timestamp := range due {
		if _, err := s.occurrences.InsertOccurrence(ctx, reminderID, timestamp); err != nil {
			return created, fmt.Errorf("failed to materialize occurrence for reminder %s: %w", reminderID.Hex(), err)
		}
		created++
	}

	if created > 0 {
		logrus.WithField("count", created).Info("Materialized due occurrences")
	}
	return created, nil
}
