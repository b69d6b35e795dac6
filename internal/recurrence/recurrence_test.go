package recurrence

import (
	"testing"
	"time"

	"github.com/Dauren914/Reminder_Manager/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNextOccurrence(t *testing.T) {
	tests := []struct {
		name     string
		freq     models.Frequency
		interval int
		last     string
		want     string
	}{
		{"one day", models.FrequencyDay, 1, "2024-03-10T09:30:00Z", "2024-03-11T09:30:00Z"},
		{"three days", models.FrequencyDay, 3, "2024-12-30T00:00:00Z", "2025-01-02T00:00:00Z"},
		{"one week", models.FrequencyWeek, 1, "2024-03-10T09:30:00Z", "2024-03-17T09:30:00Z"},
		{"two weeks", models.FrequencyWeek, 2, "2024-02-20T18:00:00Z", "2024-03-05T18:00:00Z"},
		{"one month plain", models.FrequencyMonth, 1, "2024-03-15T12:00:00Z", "2024-04-15T12:00:00Z"},
		{"jan 31 clamps to leap february", models.FrequencyMonth, 1, "2024-01-31T00:00:00Z", "2024-02-29T00:00:00Z"},
		{"jan 31 clamps to short february", models.FrequencyMonth, 1, "2023-01-31T00:00:00Z", "2023-02-28T00:00:00Z"},
		{"may 31 clamps to june 30", models.FrequencyMonth, 1, "2024-05-31T08:00:00Z", "2024-06-30T08:00:00Z"},
		{"six months across year boundary", models.FrequencyMonth, 6, "2024-08-31T00:00:00Z", "2025-02-28T00:00:00Z"},
		{"twelve months equals a year", models.FrequencyMonth, 12, "2024-04-30T00:00:00Z", "2025-04-30T00:00:00Z"},
		{"one year keeps day", models.FrequencyYear, 1, "2023-02-28T00:00:00Z", "2024-02-28T00:00:00Z"},
		{"leap day clamps next year", models.FrequencyYear, 1, "2024-02-29T00:00:00Z", "2025-02-28T00:00:00Z"},
		{"four years leap to leap", models.FrequencyYear, 4, "2024-02-29T00:00:00Z", "2028-02-29T00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextOccurrence(tt.freq, tt.interval, ts(tt.last))
			require.NoError(t, err)
			assert.Equal(t, ts(tt.want), got)
			assert.True(t, got.After(ts(tt.last)), "next occurrence must advance past the anchor")
		})
	}
}

func TestNextOccurrenceDeterministic(t *testing.T) {
	last := ts("2024-01-31T10:00:00Z")

	first, err := NextOccurrence(models.FrequencyMonth, 2, last)
	require.NoError(t, err)

	second, err := NextOccurrence(models.FrequencyMonth, 2, last)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNextOccurrenceInvalidFrequency(t *testing.T) {
	for _, freq := range []models.Frequency{0, 5, -1, 42} {
		_, err := NextOccurrence(freq, 1, ts("2024-01-01T00:00:00Z"))
		assert.ErrorIs(t, err, ErrInvalidFrequency, "frequency %d", int(freq))
	}
}

func TestNextOccurrenceInvalidInterval(t *testing.T) {
	for _, interval := range []int{0, -1, -30} {
		_, err := NextOccurrence(models.FrequencyDay, interval, ts("2024-01-01T00:00:00Z"))
		assert.ErrorIs(t, err, ErrInvalidInterval, "interval %d", interval)
	}
}

func TestNextOccurrencePreservesTimeOfDay(t *testing.T) {
	got, err := NextOccurrence(models.FrequencyMonth, 1, ts("2024-01-31T23:45:10Z"))
	require.NoError(t, err)
	assert.Equal(t, ts("2024-02-29T23:45:10Z"), got)
}
