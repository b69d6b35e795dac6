package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewReminderRecurrenceInvariant(t *testing.T) {
	employeeID := primitive.NewObjectID()
	date := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		recurring bool
		interval  int
		frequency Frequency
		wantErr   bool
	}{
		{"valid recurring", true, 2, FrequencyWeek, false},
		{"valid one-shot", false, 0, 0, false},
		{"recurring missing interval", true, 0, FrequencyWeek, true},
		{"recurring negative interval", true, -1, FrequencyWeek, true},
		{"recurring missing frequency", true, 2, 0, true},
		{"recurring unknown frequency", true, 2, Frequency(7), true},
		{"one-shot with interval", false, 2, 0, true},
		{"one-shot with frequency", false, 0, FrequencyDay, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reminder, err := NewReminder(employeeID, "submit timesheet", date, tt.recurring, tt.interval, tt.frequency)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.recurring, reminder.IsRecurring)
		})
	}
}

func TestNewReminderRequiredFields(t *testing.T) {
	employeeID := primitive.NewObjectID()

	_, err := NewReminder(employeeID, "", time.Now(), false, 0, 0)
	assert.Error(t, err, "text is required")

	_, err = NewReminder(employeeID, "note", time.Time{}, false, 0, 0)
	assert.Error(t, err, "date is required")
}

func TestCreateReminderRequestToReminder(t *testing.T) {
	employeeID := primitive.NewObjectID()

	req := CreateReminderRequest{
		Text:                "quarterly review",
		EmployeeID:          employeeID.Hex(),
		Date:                "2024-03-31T10:00:00Z",
		IsRecurring:         true,
		RecurrenceInterval:  3,
		RecurrenceFrequency: 3,
	}

	reminder, err := req.ToReminder()
	require.NoError(t, err)
	assert.Equal(t, employeeID, reminder.EmployeeID)
	assert.Equal(t, FrequencyMonth, reminder.RecurrenceFrequency)
	assert.Equal(t, 3, reminder.RecurrenceInterval)
	assert.Equal(t, time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC), reminder.Date)
}

func TestCreateReminderRequestRejectsBadInput(t *testing.T) {
	valid := CreateReminderRequest{
		Text:       "note",
		EmployeeID: primitive.NewObjectID().Hex(),
		Date:       "2024-03-31T10:00:00Z",
	}

	badID := valid
	badID.EmployeeID = "not-an-id"
	_, err := badID.ToReminder()
	assert.Error(t, err)

	badDate := valid
	badDate.Date = "31/03/2024"
	_, err = badDate.ToReminder()
	assert.Error(t, err)

	badFreq := valid
	badFreq.IsRecurring = true
	badFreq.RecurrenceInterval = 1
	badFreq.RecurrenceFrequency = 5
	_, err = badFreq.ToReminder()
	assert.Error(t, err)
}

func TestFrequencyString(t *testing.T) {
	assert.Equal(t, "day", FrequencyDay.String())
	assert.Equal(t, "week", FrequencyWeek.String())
	assert.Equal(t, "month", FrequencyMonth.String())
	assert.Equal(t, "year", FrequencyYear.String())
	assert.True(t, FrequencyYear.IsValid())
	assert.False(t, Frequency(0).IsValid())
	assert.False(t, Frequency(5).IsValid())
}
