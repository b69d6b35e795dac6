package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Frequency is the calendar unit a recurring reminder repeats on.
// The wire codes match the creation payload: 1=DAY, 2=WEEK, 3=MONTH, 4=YEAR.
type Frequency int

const (
	FrequencyDay Frequency = iota + 1
	FrequencyWeek
	FrequencyMonth
	FrequencyYear
)

// IsValid reports whether f is one of the supported units.
func (f Frequency) IsValid() bool {
	return f >= FrequencyDay && f <= FrequencyYear
}

func (f Frequency) String() string {
	switch f {
	case FrequencyDay:
		return "day"
	case FrequencyWeek:
		return "week"
	case FrequencyMonth:
		return "month"
	case FrequencyYear:
		return "year"
	default:
		return fmt.Sprintf("frequency(%d)", int(f))
	}
}

// Reminder is a note attached to an employee, fired once at Date or
// repeatedly every RecurrenceInterval×RecurrenceFrequency starting at Date.
// Reminders are immutable after creation.
type Reminder struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID          primitive.ObjectID `bson:"employee_id" json:"employee_id"`
	Text                string             `bson:"text" json:"text"`
	Date                time.Time          `bson:"date" json:"date"`
	IsRecurring         bool               `bson:"is_recurring" json:"is_recurring"`
	RecurrenceInterval  int                `bson:"recurrence_interval,omitempty" json:"recurrence_interval,omitempty"`
	RecurrenceFrequency Frequency          `bson:"recurrence_frequency,omitempty" json:"recurrence_frequency,omitempty"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
}

// NewReminder builds a Reminder and enforces the recurrence invariant:
// interval and frequency are both set iff the reminder is recurring.
func NewReminder(employeeID primitive.ObjectID, text string, date time.Time, isRecurring bool, interval int, frequency Frequency) (*Reminder, error) {
	if text == "" {
		return nil, fmt.Errorf("reminder text is required")
	}
	if date.IsZero() {
		return nil, fmt.Errorf("reminder date is required")
	}
	if isRecurring {
		if interval <= 0 {
			return nil, fmt.Errorf("recurring reminder requires a positive recurrence_interval, got %d", interval)
		}
		if !frequency.IsValid() {
			return nil, fmt.Errorf("recurring reminder requires a valid recurrence_frequency, got %d", int(frequency))
		}
	} else {
		if interval != 0 || frequency != 0 {
			return nil, fmt.Errorf("non-recurring reminder must not carry recurrence fields")
		}
	}

	return &Reminder{
		EmployeeID:          employeeID,
		Text:                text,
		Date:                date.UTC(),
		IsRecurring:         isRecurring,
		RecurrenceInterval:  interval,
		RecurrenceFrequency: frequency,
	}, nil
}

// CreateReminderRequest is the creation payload accepted by the API.
type CreateReminderRequest struct {
	Text                string `json:"text"`
	EmployeeID          string `json:"employee_id"`
	Date                string `json:"date"`
	IsRecurring         bool   `json:"is_recurring"`
	RecurrenceInterval  int    `json:"recurrence_interval,omitempty"`
	RecurrenceFrequency int    `json:"recurrence_frequency,omitempty"`
}

// ToReminder parses and validates the request into a Reminder.
func (req *CreateReminderRequest) ToReminder() (*Reminder, error) {
	employeeID, err := primitive.ObjectIDFromHex(req.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("invalid employee_id: %v", err)
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date, expected RFC 3339: %v", err)
	}

	return NewReminder(employeeID, req.Text, date, req.IsRecurring, req.RecurrenceInterval, Frequency(req.RecurrenceFrequency))
}

// ReminderWithLastOccurrence pairs a reminder with the timestamp of its most
// recent occurrence, if any occurrence exists yet.
type ReminderWithLastOccurrence struct {
	Reminder       Reminder
	LastOccurredAt *time.Time
}
