package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Dauren914/Reminder_Manager/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-memory implementation of the store interfaces used by
// the services. It mirrors the Mongo repositories' contracts, including the
// duplicate (reminder_id, timestamp) no-op, and is primarily test support.
type MemoryStore struct {
	mu          sync.Mutex
	employees   map[primitive.ObjectID]models.Employee
	reminders   map[primitive.ObjectID]models.Reminder
	occurrences map[primitive.ObjectID]models.Occurrence
	occByKey    map[occurrenceKey]primitive.ObjectID
}

type occurrenceKey struct {
	reminderID primitive.ObjectID
	timestamp  int64
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		employees:   make(map[primitive.ObjectID]models.Employee),
		reminders:   make(map[primitive.ObjectID]models.Reminder),
		occurrences: make(map[primitive.ObjectID]models.Occurrence),
		occByKey:    make(map[occurrenceKey]primitive.ObjectID),
	}
}

// InsertReminder stores a new reminder and assigns it an ID.
func (s *MemoryStore) InsertReminder(_ context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reminder.ID = primitive.NewObjectID()
	reminder.CreatedAt = time.Now()
	s.reminders[reminder.ID] = *reminder
	return reminder, nil
}

// GetReminderByID returns the reminder, or (nil, nil) when absent.
func (s *MemoryStore) GetReminderByID(_ context.Context, id primitive.ObjectID) (*models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reminder, ok := s.reminders[id]
	if !ok {
		return nil, nil
	}
	return &reminder, nil
}

// GetRemindersByEmployee returns one employee's reminders ordered by date.
func (s *MemoryStore) GetRemindersByEmployee(_ context.Context, employeeID primitive.ObjectID) ([]models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []models.Reminder
	for _, reminder := range s.reminders {
		if reminder.EmployeeID == employeeID {
			result = append(result, reminder)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// ListRemindersWithLastOccurrence returns every reminder with its latest
// occurrence timestamp, nil when it has none.
func (s *MemoryStore) ListRemindersWithLastOccurrence(_ context.Context) ([]models.ReminderWithLastOccurrence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	last := make(map[primitive.ObjectID]time.Time)
	for _, occ := range s.occurrences {
		if prev, ok := last[occ.ReminderID]; !ok || occ.Timestamp.After(prev) {
			last[occ.ReminderID] = occ.Timestamp
		}
	}

	result := make([]models.ReminderWithLastOccurrence, 0, len(s.reminders))
	for _, reminder := range s.reminders {
		item := models.ReminderWithLastOccurrence{Reminder: reminder}
		if t, ok := last[reminder.ID]; ok {
			ts := t
			item.LastOccurredAt = &ts
		}
		result = append(result, item)
	}
	return result, nil
}

// InsertOccurrence materializes a firing. Inserting the same
// (reminder, timestamp) pair twice returns the existing occurrence.
func (s *MemoryStore) InsertOccurrence(_ context.Context, reminderID primitive.ObjectID, timestamp time.Time) (*models.Occurrence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timestamp = timestamp.UTC()
	key := occurrenceKey{reminderID: reminderID, timestamp: timestamp.UnixNano()}
	if existingID, ok := s.occByKey[key]; ok {
		existing := s.occurrences[existingID]
		return &existing, nil
	}

	occ := models.Occurrence{
		ID:         primitive.NewObjectID(),
		ReminderID: reminderID,
		Timestamp:  timestamp,
		CreatedAt:  time.Now(),
	}
	s.occurrences[occ.ID] = occ
	s.occByKey[key] = occ.ID
	return &occ, nil
}

// GetOccurrencesBefore returns occurrences strictly before the cutoff joined
// with their reminders, regardless of flags.
func (s *MemoryStore) GetOccurrencesBefore(_ context.Context, cutoff time.Time) ([]models.OccurrenceWithReminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.joinedLocked(func(occ models.Occurrence, _ models.Reminder) bool {
		return occ.Timestamp.Before(cutoff)
	}), nil
}

// GetUnacknowledgedBefore returns one employee's unacknowledged occurrences
// strictly before the cutoff.
func (s *MemoryStore) GetUnacknowledgedBefore(_ context.Context, cutoff time.Time, employeeID primitive.ObjectID) ([]models.OccurrenceWithReminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.joinedLocked(func(occ models.Occurrence, reminder models.Reminder) bool {
		return reminder.EmployeeID == employeeID && !occ.IsAcknowledged && occ.Timestamp.Before(cutoff)
	}), nil
}

// GetOccurrenceByID returns the joined occurrence, or (nil, nil) when absent.
func (s *MemoryStore) GetOccurrenceByID(_ context.Context, id primitive.ObjectID) (*models.OccurrenceWithReminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	occ, ok := s.occurrences[id]
	if !ok {
		return nil, nil
	}
	reminder := s.reminders[occ.ReminderID]
	return &models.OccurrenceWithReminder{Occurrence: occ, Reminder: reminder}, nil
}

// SetNotificationSent flips the notified flag. No-op on unknown ids.
func (s *MemoryStore) SetNotificationSent(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if occ, ok := s.occurrences[id]; ok {
		occ.IsNotificationSent = true
		s.occurrences[id] = occ
	}
	return nil
}

// SetAcknowledged flips the acknowledged flag. No-op on unknown ids.
func (s *MemoryStore) SetAcknowledged(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if occ, ok := s.occurrences[id]; ok {
		occ.IsAcknowledged = true
		s.occurrences[id] = occ
	}
	return nil
}

// CreateEmployee stores a new employee account.
func (s *MemoryStore) CreateEmployee(_ context.Context, employee *models.Employee) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	employee.ID = primitive.NewObjectID()
	employee.CreatedAt = time.Now()
	employee.UpdatedAt = employee.CreatedAt
	s.employees[employee.ID] = *employee
	return employee, nil
}

// GetEmployeeByID returns the employee, or (nil, nil) when absent.
func (s *MemoryStore) GetEmployeeByID(_ context.Context, id primitive.ObjectID) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	employee, ok := s.employees[id]
	if !ok {
		return nil, nil
	}
	return &employee, nil
}

// GetEmployeeByEmail returns the employee, or (nil, nil) when absent.
func (s *MemoryStore) GetEmployeeByEmail(_ context.Context, email string) (*models.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, employee := range s.employees {
		if employee.Email == email {
			e := employee
			return &e, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) joinedLocked(keep func(models.Occurrence, models.Reminder) bool) []models.OccurrenceWithReminder {
	var result []models.OccurrenceWithReminder
	for _, occ := range s.occurrences {
		reminder, ok := s.reminders[occ.ReminderID]
		if !ok {
			continue
		}
		if keep(occ, reminder) {
			result = append(result, models.OccurrenceWithReminder{Occurrence: occ, Reminder: reminder})
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Occurrence.Timestamp.Before(result[j].Occurrence.Timestamp)
	})
	return result
}
