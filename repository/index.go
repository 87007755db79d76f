package repository

import (
	"context"
	"fmt"
	"time"

	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupIndexes creates the indexes the query paths rely on. Safe to
// call at every startup; index creation is idempotent.
func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	documentsCollection := db.Collection("documents")
	usersCollection := db.Collection("users")
	sessionsCollection := db.Collection("sessions")

	documentIndexes := []mongo.IndexModel{
		// List view: owner scope ordered by recency
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "updated_at", Value: -1},
			},
			Options: options.Index().SetName("user_documents_recency"),
		},
		// Category filter
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "category", Value: 1},
			},
			Options: options.Index().SetName("user_categories"),
		},
		// Tag lookups
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "tags", Value: 1},
			},
			Options: options.Index().SetName("user_tags"),
		},
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("user_id_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName("username_unique").SetUnique(true),
		},
	}

	sessionIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().SetName("session_id_unique").SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "is_active", Value: 1},
			},
			Options: options.Index().SetName("user_active_sessions"),
		},
		// Mongo reaps expired sessions on its own
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("session_expiry").SetExpireAfterSeconds(0),
		},
	}

	if _, err := documentsCollection.Indexes().CreateMany(ctx, documentIndexes); err != nil {
		return fmt.Errorf("failed to create document indexes: %w", err)
	}
	if _, err := usersCollection.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	if _, err := sessionsCollection.Indexes().CreateMany(ctx, sessionIndexes); err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}

	utils.Sugar.Info("Successfully created all indexes")
	return nil
}
