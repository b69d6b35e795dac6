package services

import (
	"context"
	"time"

	"github.com/Dauren914/Reminder_Manager/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OccurrenceService exposes the occurrence lifecycle: time-window queries
// plus the two monotonic flag transitions. "Due" here is defined by
// timestamp alone; callers that care about a flag filter on it.
type OccurrenceService struct {
	store OccurrenceStore
}

// NewOccurrenceService creates a new instance of OccurrenceService.
func NewOccurrenceService(store OccurrenceStore) *OccurrenceService {
	return &OccurrenceService{store: store}
}

// FindDueBefore returns every occurrence with timestamp strictly before the
// cutoff, regardless of acknowledgment or notification state.
func (s *OccurrenceService) FindDueBefore(ctx context.Context, cutoff time.Time) ([]models.OccurrenceWithReminder, error) {
	return s.store.GetOccurrencesBefore(ctx, cutoff)
}

// FindUnacknowledgedDueBefore returns one employee's unacknowledged
// occurrences with timestamp strictly before the cutoff.
func (s *OccurrenceService) FindUnacknowledgedDueBefore(ctx context.Context, cutoff time.Time, employeeID primitive.ObjectID) ([]models.OccurrenceWithReminder, error) {
	return s.store.GetUnacknowledgedBefore(ctx, cutoff, employeeID)
}

// FindByID returns the occurrence with its reminder, or (nil, nil) when the
// id is unknown.
func (s *OccurrenceService) FindByID(ctx context.Context, id primitive.ObjectID) (*models.OccurrenceWithReminder, error) {
	return s.store.GetOccurrenceByID(ctx, id)
}

// MarkNotified records that the notification for an occurrence was sent.
// Idempotent; unknown ids are a silent no-op.
func (s *OccurrenceService) MarkNotified(ctx context.Context, id primitive.ObjectID) error {
	return s.store.SetNotificationSent(ctx, id)
}

// Acknowledge records the employee's acknowledgment of an occurrence.
// Idempotent; unknown ids are a silent no-op — surfacing a 404 is the API
// layer's concern.
func (s *OccurrenceService) Acknowledge(ctx context.Context, id primitive.ObjectID) error {
	return s.store.SetAcknowledged(ctx, id)
}
