package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dauren914/Reminder_Manager/internal/models"
	"github.com/Dauren914/Reminder_Manager/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedOccurrence(t *testing.T, store *repository.MemoryStore, reminderID primitive.ObjectID, ts time.Time) *models.Occurrence {
	t.Helper()
	occ, err := store.InsertOccurrence(context.Background(), reminderID, ts)
	require.NoError(t, err)
	return occ
}

func TestAcknowledgeIsIdempotent(t *testing.T) {
	store := repository.NewMemoryStore()
	service := NewOccurrenceService(store)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	reminder := seedReminder(t, store, mustReminder(t, primitive.NewObjectID(), now.Add(-time.Hour), false, 0, 0))
	occ := seedOccurrence(t, store, reminder.ID, reminder.Date)

	require.NoError(t, service.Acknowledge(context.Background(), occ.ID))
	require.NoError(t, service.Acknowledge(context.Background(), occ.ID))

	got, err := service.FindByID(context.Background(), occ.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Occurrence.IsAcknowledged)
}

func TestAcknowledgeUnknownIDIsNoOp(t *testing.T) {
	store := repository.NewMemoryStore()
	service := NewOccurrenceService(store)

	assert.NoError(t, service.Acknowledge(context.Background(), primitive.NewObjectID()))
}

func TestMarkNotifiedIsIdempotent(t *testing.T) {
	store := repository.NewMemoryStore()
	service := NewOccurrenceService(store)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	reminder := seedReminder(t, store, mustReminder(t, primitive.NewObjectID(), now.Add(-time.Hour), false, 0, 0))
	occ := seedOccurrence(t, store, reminder.ID, reminder.Date)

	require.NoError(t, service.MarkNotified(context.Background(), occ.ID))
	require.NoError(t, service.MarkNotified(context.Background(), occ.ID))

	got, err := service.FindByID(context.Background(), occ.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Occurrence.IsNotificationSent)
	assert.False(t, got.Occurrence.IsAcknowledged, "notified must not imply acknowledged")
}

func TestFindByIDAbsent(t *testing.T) {
	store := repository.NewMemoryStore()
	service := NewOccurrenceService(store)

	got, err := service.FindByID(context.Background(), primitive.NewObjectID())
	require.NoError(t, err, "absence is not an error")
	assert.Nil(t, got)
}

func TestFindDueBeforeUsesStrictCutoff(t *testing.T) {
	store := repository.NewMemoryStore()
	service := NewOccurrenceService(store)
	cutoff := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	reminder := seedReminder(t, store, mustReminder(t, primitive.NewObjectID(), cutoff.Add(-72*time.Hour), true, 1, models.FrequencyDay))
	before := seedOccurrence(t, store, reminder.ID, cutoff.Add(-time.Minute))
	seedOccurrence(t, store, reminder.ID, cutoff)               // exactly at the cutoff
	seedOccurrence(t, store, reminder.ID, cutoff.Add(time.Minute)) // after

	due, err := service.FindDueBefore(context.Background(), cutoff)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, before.ID, due[0].Occurrence.ID)
	assert.Equal(t, reminder.ID, due[0].Reminder.ID, "occurrences come joined with their reminder")
}

func TestFindDueBeforeIgnoresFlags(t *testing.T) {
	store := repository.NewMemoryStore()
	service := NewOccurrenceService(store)
	cutoff := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	reminder := seedReminder(t, store, mustReminder(t, primitive.NewObjectID(), cutoff.Add(-72*time.Hour), true, 1, models.FrequencyDay))
	acked := seedOccurrence(t, store, reminder.ID, cutoff.Add(-2*time.Hour))
	require.NoError(t, service.Acknowledge(context.Background(), acked.ID))
	notified := seedOccurrence(t, store, reminder.ID, cutoff.Add(-time.Hour))
	require.NoError(t, service.MarkNotified(context.Background(), notified.ID))

	due, err := service.FindDueBefore(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Len(t, due, 2, "due is defined by timestamp alone")
}

func TestFindUnacknowledgedDueBeforeScoping(t *testing.T) {
	store := repository.NewMemoryStore()
	service := NewOccurrenceService(store)
	cutoff := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	aliceReminder := seedReminder(t, store, mustReminder(t, alice, cutoff.Add(-72*time.Hour), true, 1, models.FrequencyDay))
	bobReminder := seedReminder(t, store, mustReminder(t, bob, cutoff.Add(-72*time.Hour), true, 1, models.FrequencyDay))

	open := seedOccurrence(t, store, aliceReminder.ID, cutoff.Add(-3*time.Hour))
	acked := seedOccurrence(t, store, aliceReminder.ID, cutoff.Add(-2*time.Hour))
	require.NoError(t, service.Acknowledge(context.Background(), acked.ID))
	seedOccurrence(t, store, aliceReminder.ID, cutoff.Add(time.Hour)) // not yet due
	seedOccurrence(t, store, bobReminder.ID, cutoff.Add(-time.Hour))  // other employee

	due, err := service.FindUnacknowledgedDueBefore(context.Background(), cutoff, alice)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, open.ID, due[0].Occurrence.ID)

	// Notification state does not hide an unacknowledged occurrence.
	require.NoError(t, service.MarkNotified(context.Background(), open.ID))
	due, err = service.FindUnacknowledgedDueBefore(context.Background(), cutoff, alice)
	require.NoError(t, err)
	assert.Len(t, due, 1)
}
