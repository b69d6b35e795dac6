package jobs

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Dauren914/Reminder_Manager/internal/models"
	"github.com/Dauren914/Reminder_Manager/internal/repository"
	"github.com/Dauren914/Reminder_Manager/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []string
	fail bool
}

func (f *fakeSender) Send(to, subject, body string) error {
	if f.fail {
		return fmt.Errorf("smtp unreachable")
	}
	f.sent = append(f.sent, to)
	return nil
}

func setupNotifier(t *testing.T, sender *fakeSender) (*DueNotifier, *repository.MemoryStore, *models.Employee) {
	t.Helper()
	store := repository.NewMemoryStore()

	employee, err := store.CreateEmployee(context.Background(), &models.Employee{
		Name:  "Aliya",
		Email: "aliya@example.com",
	})
	require.NoError(t, err)

	notifier := NewDueNotifier(
		services.NewOccurrenceService(store),
		services.NewEmployeeService(store),
		sender,
	)
	return notifier, store, employee
}

func seedDueOccurrence(t *testing.T, store *repository.MemoryStore, employee *models.Employee, ts time.Time) *models.Occurrence {
	t.Helper()
	reminder, err := models.NewReminder(employee.ID, "water the plants", ts, false, 0, 0)
	require.NoError(t, err)
	created, err := store.InsertReminder(context.Background(), reminder)
	require.NoError(t, err)
	occ, err := store.InsertOccurrence(context.Background(), created.ID, ts)
	require.NoError(t, err)
	return occ
}

func TestRunScanSendsAndMarksNotified(t *testing.T) {
	sender := &fakeSender{}
	notifier, store, employee := setupNotifier(t, sender)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	occ := seedDueOccurrence(t, store, employee, now.Add(-time.Hour))

	require.NoError(t, notifier.RunScan(context.Background(), now))
	assert.Equal(t, []string{"aliya@example.com"}, sender.sent)

	got, err := store.GetOccurrenceByID(context.Background(), occ.ID)
	require.NoError(t, err)
	assert.True(t, got.Occurrence.IsNotificationSent)

	// A second run has nothing left to send.
	require.NoError(t, notifier.RunScan(context.Background(), now))
	assert.Len(t, sender.sent, 1)
}

func TestRunScanRetriesAfterSendFailure(t *testing.T) {
	sender := &fakeSender{fail: true}
	notifier, store, employee := setupNotifier(t, sender)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	occ := seedDueOccurrence(t, store, employee, now.Add(-time.Hour))

	require.NoError(t, notifier.RunScan(context.Background(), now), "send failures are isolated, not fatal")

	got, err := store.GetOccurrenceByID(context.Background(), occ.ID)
	require.NoError(t, err)
	assert.False(t, got.Occurrence.IsNotificationSent, "failed send leaves the flag unset")

	sender.fail = false
	require.NoError(t, notifier.RunScan(context.Background(), now))
	assert.Equal(t, []string{"aliya@example.com"}, sender.sent)
}

func TestRunScanSkipsFutureOccurrences(t *testing.T) {
	sender := &fakeSender{}
	notifier, store, employee := setupNotifier(t, sender)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	seedDueOccurrence(t, store, employee, now.Add(time.Hour))

	require.NoError(t, notifier.RunScan(context.Background(), now))
	assert.Empty(t, sender.sent)
}
