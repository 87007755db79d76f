package repository

import (
	"context"
	"fmt"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SessionRepo struct {
	MongoCollection *mongo.Collection
}

func GetSessionRepo(client *mongo.Client) *SessionRepo {
	return &SessionRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("sessions"),
	}
}

func (r *SessionRepo) CreateSession(ctx context.Context, session *model.Session) error {
	timer := utils.TrackDBOperation("insert", "sessions")
	defer timer.ObserveDuration()

	if _, err := r.MongoCollection.InsertOne(ctx, session); err != nil {
		utils.TrackError("database")
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetUserActiveSessions returns the user's live sessions, newest activity first.
func (r *SessionRepo) GetUserActiveSessions(ctx context.Context, userID string) ([]*model.Session, error) {
	timer := utils.TrackDBOperation("find", "sessions")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "last_activity_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, bson.M{
		"user_id":    userID,
		"is_active":  true,
		"expires_at": bson.M{"$gt": time.Now()},
	}, opts)
	if err != nil {
		utils.TrackError("database")
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []*model.Session
	if err = cursor.All(ctx, &sessions); err != nil {
		utils.TrackError("database")
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}
	return sessions, nil
}

func (r *SessionRepo) EndSession(ctx context.Context, sessionID string) error {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"session_id": sessionID},
		bson.M{"$set": bson.M{"is_active": false}})
	if err != nil {
		utils.TrackError("database")
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

func (r *SessionRepo) EndAllUserSessions(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("update", "sessions")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.UpdateMany(ctx,
		bson.M{"user_id": userID, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false}})
	if err != nil {
		utils.TrackError("database")
		return fmt.Errorf("failed to end user sessions: %w", err)
	}
	return nil
}

func (r *SessionRepo) CountActiveSessions(ctx context.Context) (int64, error) {
	timer := utils.TrackDBOperation("count", "sessions")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{
		"is_active":  true,
		"expires_at": bson.M{"$gt": time.Now()},
	})
	if err != nil {
		utils.TrackError("database")
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return count, nil
}
