package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Dauren914/Reminder_Manager/internal/models"
	"github.com/Dauren914/Reminder_Manager/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OccurrenceRepository handles database operations related to occurrences.
// The occurrences collection carries a unique index on
// (reminder_id, timestamp), see database.EnsureIndexes.
type OccurrenceRepository struct {
	occurrences *mongo.Collection
	reminders   *mongo.Collection
}

// NewOccurrenceRepository creates a new instance of OccurrenceRepository.
func NewOccurrenceRepository(db *mongo.Database) *OccurrenceRepository {
	return &OccurrenceRepository{
		occurrences: db.Collection("occurrences"),
		reminders:   db.Collection("reminders"),
	}
}

// InsertOccurrence materializes one firing of a reminder. A concurrent
// scanner replica may have inserted the same (reminder, timestamp) pair
// already; that duplicate-key case is a benign no-op returning the existing
// occurrence. The caller guarantees the timestamp is not before the
// reminder's base date (see services.OccurrenceStore).
func (r *OccurrenceRepository) InsertOccurrence(ctx context.Context, reminderID primitive.ObjectID, timestamp time.Time) (*models.Occurrence, error) {
	occ := &models.Occurrence{
		ReminderID:         reminderID,
		Timestamp:          timestamp.UTC(),
		IsAcknowledged:     false,
		IsNotificationSent: false,
		CreatedAt:          time.Now(),
	}

	result, err := r.occurrences.InsertOne(ctx, occ)
	if mongo.IsDuplicateKeyError(err) {
		logger.Log.WithFields(map[string]interface{}{
			"reminder_id": reminderID.Hex(),
			"timestamp":   timestamp,
		}).Info("Occurrence already exists, skipping duplicate insert")
		return r.findByReminderAndTimestamp(ctx, reminderID, occ.Timestamp)
	}
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert occurrence")
		return nil, fmt.Errorf("failed to insert occurrence: %w", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted occurrence ID")
		return nil, fmt.Errorf("unexpected inserted ID type %T", result.InsertedID)
	}
	occ.ID = insertedID

	logger.Log.WithFields(map[string]interface{}{
		"occurrence_id": occ.ID.Hex(),
		"reminder_id":   reminderID.Hex(),
	}).Info("Occurrence created")
	return occ, nil
}

func (r *OccurrenceRepository) findByReminderAndTimestamp(ctx context.Context, reminderID primitive.ObjectID, timestamp time.Time) (*models.Occurrence, error) {
	var occ models.Occurrence
	err := r.occurrences.FindOne(ctx, bson.M{"reminder_id": reminderID, "timestamp": timestamp}).Decode(&occ)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing occurrence: %w", err)
	}
	return &occ, nil
}

// GetOccurrencesBefore returns all occurrences with timestamp strictly
// before the cutoff, joined with their reminders, regardless of flags.
func (r *OccurrenceRepository) GetOccurrencesBefore(ctx context.Context, cutoff time.Time) ([]models.OccurrenceWithReminder, error) {
	filter := bson.M{"timestamp": bson.M{"$lt": cutoff}}
	return r.findJoined(ctx, filter)
}

// GetUnacknowledgedBefore returns one employee's unacknowledged occurrences
// with timestamp strictly before the cutoff.
func (r *OccurrenceRepository) GetUnacknowledgedBefore(ctx context.Context, cutoff time.Time, employeeID primitive.ObjectID) ([]models.OccurrenceWithReminder, error) {
	cursor, err := r.reminders.Find(ctx, bson.M{"employee_id": employeeID})
	if err != nil {
		logger.Log.WithError(err).WithField("employee_id", employeeID.Hex()).Error("Failed to fetch employee reminders")
		return nil, fmt.Errorf("failed to fetch reminders: %w", err)
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("failed to decode reminders: %w", err)
	}
	if len(reminders) == 0 {
		return nil, nil
	}

	ids := make([]primitive.ObjectID, 0, len(reminders))
	for _, reminder := range reminders {
		ids = append(ids, reminder.ID)
	}

	filter := bson.M{
		"reminder_id":     bson.M{"$in": ids},
		"timestamp":       bson.M{"$lt": cutoff},
		"is_acknowledged": false,
	}
	return r.findJoined(ctx, filter)
}

// GetOccurrenceByID fetches one occurrence with its reminder. Returns
// (nil, nil) when the occurrence does not exist.
func (r *OccurrenceRepository) GetOccurrenceByID(ctx context.Context, id primitive.ObjectID) (*models.OccurrenceWithReminder, error) {
	var occ models.Occurrence
	err := r.occurrences.FindOne(ctx, bson.M{"_id": id}).Decode(&occ)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		logger.Log.WithError(err).WithField("occurrence_id", id.Hex()).Error("Failed to find occurrence by ID")
		return nil, fmt.Errorf("failed to fetch occurrence: %w", err)
	}

	var reminder models.Reminder
	err = r.reminders.FindOne(ctx, bson.M{"_id": occ.ReminderID}).Decode(&reminder)
	if err != nil {
		logger.Log.WithError(err).WithField("reminder_id", occ.ReminderID.Hex()).Error("Failed to find occurrence's reminder")
		return nil, fmt.Errorf("failed to fetch reminder: %w", err)
	}

	return &models.OccurrenceWithReminder{Occurrence: occ, Reminder: reminder}, nil
}

// SetNotificationSent marks an occurrence as notified. Idempotent, and a
// silent no-op when the id does not exist.
func (r *OccurrenceRepository) SetNotificationSent(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.occurrences.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_notification_sent": true}})
	if err != nil {
		logger.Log.WithError(err).WithField("occurrence_id", id.Hex()).Error("Failed to mark occurrence notified")
		return fmt.Errorf("failed to mark occurrence notified: %w", err)
	}
	return nil
}

// SetAcknowledged marks an occurrence as acknowledged. Idempotent, and a
// silent no-op when the id does not exist.
func (r *OccurrenceRepository) SetAcknowledged(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.occurrences.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_acknowledged": true}})
	if err != nil {
		logger.Log.WithError(err).WithField("occurrence_id", id.Hex()).Error("Failed to acknowledge occurrence")
		return fmt.Errorf("failed to acknowledge occurrence: %w", err)
	}
	return nil
}

// findJoined runs the occurrence filter, then joins reminders in one $in
// query.
func (r *OccurrenceRepository) findJoined(ctx context.Context, filter bson.M) ([]models.OccurrenceWithReminder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})

	cursor, err := r.occurrences.Find(ctx, filter, opts)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch occurrences")
		return nil, fmt.Errorf("failed to fetch occurrences: %w", err)
	}
	defer cursor.Close(ctx)

	var occurrences []models.Occurrence
	if err := cursor.All(ctx, &occurrences); err != nil {
		return nil, fmt.Errorf("failed to decode occurrences: %w", err)
	}
	if len(occurrences) == 0 {
		return nil, nil
	}

	reminderIDs := make([]primitive.ObjectID, 0, len(occurrences))
	seen := make(map[primitive.ObjectID]bool)
	for _, occ := range occurrences {
		if !seen[occ.ReminderID] {
			seen[occ.ReminderID] = true
			reminderIDs = append(reminderIDs, occ.ReminderID)
		}
	}

	remCursor, err := r.reminders.Find(ctx, bson.M{"_id": bson.M{"$in": reminderIDs}})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch reminders for occurrences")
		return nil, fmt.Errorf("failed to fetch reminders: %w", err)
	}
	defer remCursor.Close(ctx)

	var reminders []models.Reminder
	if err := remCursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("failed to decode reminders: %w", err)
	}

	byID := make(map[primitive.ObjectID]models.Reminder, len(reminders))
	for _, reminder := range reminders {
		byID[reminder.ID] = reminder
	}

	result := make([]models.OccurrenceWithReminder, 0, len(occurrences))
	for _, occ := range occurrences {
		reminder, ok := byID[occ.ReminderID]
		if !ok {
			logger.Log.WithField("occurrence_id", occ.ID.Hex()).Warn("Occurrence references missing reminder, skipping")
			continue
		}
		result = append(result, models.OccurrenceWithReminder{Occurrence: occ, Reminder: reminder})
	}
	return result, nil
}
