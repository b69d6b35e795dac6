package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Dauren914/Reminder_Manager/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB establishes the MongoDB connection and bootstraps indexes.
func ConnectDB(cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.DBName)
	if err := EnsureIndexes(ctx, db); err != nil {
		return nil, err
	}
	return db, nil
}

// EnsureIndexes creates the indexes the service relies on. The unique
// compound index on occurrences is what makes concurrent scanner replicas
// safe: a second insert of the same (reminder_id, timestamp) pair fails with
// a duplicate-key error the repository absorbs as a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("occurrences").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "reminder_id", Value: 1},
			{Key: "timestamp", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create occurrence uniqueness index: %w", err)
	}

	_, err = db.Collection("employees").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create employee email index: %w", err)
	}

	return nil
}
