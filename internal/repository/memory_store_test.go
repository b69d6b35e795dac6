package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Dauren914/Reminder_Manager/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Two scanner replicas can legitimately compute the same due candidate and
// both call InsertOccurrence with the same (reminder, timestamp) pair. The
// second insert must be a benign no-op returning the existing occurrence.
func TestInsertOccurrenceDuplicateIsNoOp(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	reminder, err := models.NewReminder(primitive.NewObjectID(), "pay rent", time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), false, 0, 0)
	require.NoError(t, err)
	created, err := store.InsertReminder(ctx, reminder)
	require.NoError(t, err)

	first, err := store.InsertOccurrence(ctx, created.ID, created.Date)
	require.NoError(t, err)

	second, err := store.InsertOccurrence(ctx, created.ID, created.Date)
	require.NoError(t, err, "duplicate insert must not be an error")
	assert.Equal(t, first.ID, second.ID, "duplicate insert returns the existing occurrence")

	rows, err := store.GetOccurrencesBefore(ctx, created.Date.Add(time.Second))
	require.NoError(t, err)
	assert.Len(t, rows, 1, "only one occurrence exists for the pair")
}

// Flag transitions survive a duplicate insert: the no-op must hand back the
// already-mutated occurrence, not a fresh one.
func TestInsertOccurrenceDuplicateKeepsFlags(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	reminder, err := models.NewReminder(primitive.NewObjectID(), "weekly sync", time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC), true, 1, models.FrequencyWeek)
	require.NoError(t, err)
	created, err := store.InsertReminder(ctx, reminder)
	require.NoError(t, err)

	first, err := store.InsertOccurrence(ctx, created.ID, created.Date)
	require.NoError(t, err)
	require.NoError(t, store.SetAcknowledged(ctx, first.ID))

	second, err := store.InsertOccurrence(ctx, created.ID, created.Date)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.IsAcknowledged, "duplicate insert reflects the stored state")

	// A different timestamp is a different firing, not a duplicate.
	third, err := store.InsertOccurrence(ctx, created.ID, created.Date.Add(7*24*time.Hour))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}
