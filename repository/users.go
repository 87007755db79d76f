package repository

import (
	"context"
	"errors"
	"fmt"
	"os"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepo struct {
	MongoCollection *mongo.Collection
}

func GetUserRepo(client *mongo.Client) *UserRepo {
	return &UserRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("users"),
	}
}

func (r *UserRepo) AddUser(ctx context.Context, user *model.User) error {
	timer := utils.TrackDBOperation("insert", "users")
	defer timer.ObserveDuration()

	if user.Username == "" || user.Password == "" {
		utils.TrackError("database")
		return errors.New("username and password required")
	}

	if _, err := r.MongoCollection.InsertOne(ctx, user); err != nil {
		utils.TrackError("database")
		return fmt.Errorf("failed to add user: %w", err)
	}
	return nil
}

// FindUserByUsername returns (nil, nil) when no such user exists.
func (r *UserRepo) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		utils.TrackError("database")
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}

// FindUser returns (nil, nil) when no such user exists.
func (r *UserRepo) FindUser(ctx context.Context, userID string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.D{{Key: "user_id", Value: userID}}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		utils.TrackError("database")
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}

// EnableTwoFactor stores the verified TOTP secret and flips the flag.
func (r *UserRepo) EnableTwoFactor(ctx context.Context, userID, secret string) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{
			"two_factor_secret":  secret,
			"two_factor_enabled": true,
		}})
	if err != nil {
		utils.TrackError("database")
		return fmt.Errorf("failed to enable two-factor auth: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.New("user not found")
	}
	return nil
}

func (r *UserRepo) DisableTwoFactor(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{
			"two_factor_secret":  "",
			"two_factor_enabled": false,
		}})
	if err != nil {
		utils.TrackError("database")
		return fmt.Errorf("failed to disable two-factor auth: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.New("user not found")
	}
	return nil
}
