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

// ReminderRepository handles database operations related to reminders.
type ReminderRepository struct {
	reminders   *mongo.Collection
	occurrences *mongo.Collection
}

// NewReminderRepository creates a new instance of ReminderRepository.
func NewReminderRepository(db *mongo.Database) *ReminderRepository {
	return &ReminderRepository{
		reminders:   db.Collection("reminders"),
		occurrences: db.Collection("occurrences"),
	}
}

// InsertReminder creates a new reminder in the database.
func (r *ReminderRepository) InsertReminder(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	reminder.CreatedAt = time.Now()

	result, err := r.reminders.InsertOne(ctx, reminder)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert reminder")
		return nil, fmt.Errorf("failed to insert reminder: %w", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted reminder ID")
		return nil, fmt.Errorf("unexpected inserted ID type %T", result.InsertedID)
	}
	reminder.ID = insertedID

	logger.Log.WithField("reminder_id", reminder.ID.Hex()).Info("Reminder created")
	return reminder, nil
}

// GetReminderByID fetches a reminder by its ID. Returns (nil, nil) when the
// reminder does not exist.
func (r *ReminderRepository) GetReminderByID(ctx context.Context, id primitive.ObjectID) (*models.Reminder, error) {
	var reminder models.Reminder

	err := r.reminders.FindOne(ctx, bson.M{"_id": id}).Decode(&reminder)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		logger.Log.WithError(err).WithField("reminder_id", id.Hex()).Error("Failed to find reminder by ID")
		return nil, fmt.Errorf("failed to fetch reminder: %w", err)
	}

	return &reminder, nil
}

// GetRemindersByEmployee fetches all reminders owned by one employee.
func (r *ReminderRepository) GetRemindersByEmployee(ctx context.Context, employeeID primitive.ObjectID) ([]models.Reminder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.reminders.Find(ctx, bson.M{"employee_id": employeeID}, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("employee_id", employeeID.Hex()).Error("Failed to fetch reminders")
		return nil, fmt.Errorf("failed to fetch reminders: %w", err)
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("failed to decode reminders: %w", err)
	}
	return reminders, nil
}

// ListRemindersWithLastOccurrence returns every reminder together with the
// timestamp of its most recent occurrence, nil when none exists yet. This is
// the scanner's view of the world.
func (r *ReminderRepository) ListRemindersWithLastOccurrence(ctx context.Context) ([]models.ReminderWithLastOccurrence, error) {
	cursor, err := r.reminders.Find(ctx, bson.M{})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch reminders for scan")
		return nil, fmt.Errorf("failed to fetch reminders: %w", err)
	}
	defer cursor.Close(ctx)

	var reminders []models.Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("failed to decode reminders: %w", err)
	}

	lastByReminder, err := r.lastOccurrenceTimestamps(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.ReminderWithLastOccurrence, 0, len(reminders))
	for _, reminder := range reminders {
		item := models.ReminderWithLastOccurrence{Reminder: reminder}
		if last, ok := lastByReminder[reminder.ID]; ok {
			t := last
			item.LastOccurredAt = &t
		}
		result = append(result, item)
	}
	return result, nil
}

// lastOccurrenceTimestamps groups occurrences by reminder and keeps the
// maximum timestamp per reminder.
func (r *ReminderRepository) lastOccurrenceTimestamps(ctx context.Context) (map[primitive.ObjectID]time.Time, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$reminder_id"},
			{Key: "last", Value: bson.D{{Key: "$max", Value: "$timestamp"}}},
		}}},
	}

	cursor, err := r.occurrences.Aggregate(ctx, pipeline)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to aggregate last occurrences")
		return nil, fmt.Errorf("failed to aggregate occurrences: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ReminderID primitive.ObjectID `bson:"_id"`
		Last       time.Time          `bson:"last"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode occurrence aggregation: %w", err)
	}

	last := make(map[primitive.ObjectID]time.Time, len(rows))
	for _, row := range rows {
		last[row.ReminderID] = row.Last
	}
	return last, nil
}
