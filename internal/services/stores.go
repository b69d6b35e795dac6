package services

import (
	"context"
	"time"

	"github.com/Dauren914/Reminder_Manager/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReminderStore is the persistence surface the reminder and scanner services
// need. Implemented by repository.ReminderRepository and
// repository.MemoryStore.
type ReminderStore interface {
	InsertReminder(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error)
	GetReminderByID(ctx context.Context, id primitive.ObjectID) (*models.Reminder, error)
	GetRemindersByEmployee(ctx context.Context, employeeID primitive.ObjectID) ([]models.Reminder, error)
	ListRemindersWithLastOccurrence(ctx context.Context) ([]models.ReminderWithLastOccurrence, error)
}

// OccurrenceStore is the persistence surface for occurrences. InsertOccurrence
// must treat a duplicate (reminderID, timestamp) pair as a benign no-op; the
// flag setters must be idempotent and silently ignore unknown ids.
//
// Caller contract for InsertOccurrence: the timestamp must be at or after the
// reminder's base date. The store does not re-check this; the scanner is the
// only production writer and only emits the base date or points past it.
type OccurrenceStore interface {
	InsertOccurrence(ctx context.Context, reminderID primitive.ObjectID, timestamp time.Time) (*models.Occurrence, error)
	GetOccurrencesBefore(ctx context.Context, cutoff time.Time) ([]models.OccurrenceWithReminder, error)
	GetUnacknowledgedBefore(ctx context.Context, cutoff time.Time, employeeID primitive.ObjectID) ([]models.OccurrenceWithReminder, error)
	GetOccurrenceByID(ctx context.Context, id primitive.ObjectID) (*models.OccurrenceWithReminder, error)
	SetNotificationSent(ctx context.Context, id primitive.ObjectID) error
	SetAcknowledged(ctx context.Context, id primitive.ObjectID) error
}

// EmployeeStore is the persistence surface for employee accounts.
type EmployeeStore interface {
	CreateEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error)
	GetEmployeeByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error)
	GetEmployeeByEmail(ctx context.Context, email string) (*models.Employee, error)
}
