package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDocumentNotFound is returned when no document owned by the caller
// matches the requested id.
var ErrDocumentNotFound = errors.New("document not found")

type DocumentRepo struct {
	MongoCollection *mongo.Collection
}

func GetDocumentRepo(client *mongo.Client) *DocumentRepo {
	return &DocumentRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("documents"),
	}
}

// InsertDocument stores a new document. The caller is responsible for
// id, owner and timestamps.
func (r *DocumentRepo) InsertDocument(ctx context.Context, doc *model.Document) error {
	timer := utils.TrackDBOperation("insert", "documents")
	defer timer.ObserveDuration()

	if doc.UserID == "" {
		utils.TrackError("database")
		return errors.New("user ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, doc)
	if err != nil {
		utils.TrackError("database")
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// FindDocuments returns the caller's documents, most recently updated
// first. A non-empty search term restricts the result to documents
// whose title or content contains it case-insensitively; a category
// other than the "All" sentinel restricts to an exact category match.
// Both filters compose with AND.
func (r *DocumentRepo) FindDocuments(ctx context.Context, userID, search, category string) ([]*model.Document, error) {
	timer := utils.TrackDBOperation("find", "documents")
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID}

	if category != "" && category != model.AllCategories {
		filter["category"] = category
	}

	if search != "" {
		// QuoteMeta keeps user input literal inside the $regex match.
		pattern := regexp.QuoteMeta(search)
		filter["$or"] = []bson.M{
			{"title": bson.M{"$regex": pattern, "$options": "i"}},
			{"content": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.TrackError("database")
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer cursor.Close(ctx)

	docs := make([]*model.Document, 0)
	if err = cursor.All(ctx, &docs); err != nil {
		utils.TrackError("database")
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	return docs, nil
}

// FindDocument retrieves a single owned document. Absence is reported
// as (nil, nil), not as an error.
func (r *DocumentRepo) FindDocument(ctx context.Context, id, userID string) (*model.Document, error) {
	timer := utils.TrackDBOperation("find_one", "documents")
	defer timer.ObserveDuration()

	var doc model.Document
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"_id": id, "user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		utils.TrackError("database")
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	return &doc, nil
}

// UpdateDocument persists the mutable fields of an already-merged
// document and refreshes updated_at. Returns ErrDocumentNotFound when
// no owned document matches.
func (r *DocumentRepo) UpdateDocument(ctx context.Context, id, userID string, doc *model.Document) error {
	timer := utils.TrackDBOperation("update", "documents")
	defer timer.ObserveDuration()

	filter := bson.M{"_id": id, "user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"title":      doc.Title,
			"content":    doc.Content,
			"category":   doc.Category,
			"tags":       doc.Tags,
			"updated_at": doc.UpdatedAt,
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database")
		return fmt.Errorf("failed to update document: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

// DeleteDocument removes an owned document. Deleting a missing or
// foreign-owned document is a silent no-op; the scoped filter makes
// both cases observably identical to success.
func (r *DocumentRepo) DeleteDocument(ctx context.Context, id, userID string) error {
	timer := utils.TrackDBOperation("delete", "documents")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		utils.TrackError("database")
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// ListCategoryValues returns the category of every owned document in
// creation order. Deduplication into the first-seen distinct set
// happens in the service layer.
func (r *DocumentRepo) ListCategoryValues(ctx context.Context, userID string) ([]string, error) {
	timer := utils.TrackDBOperation("find", "documents")
	defer timer.ObserveDuration()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetProjection(bson.M{"category": 1})

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		utils.TrackError("database")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Category string `bson:"category"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		utils.TrackError("database")
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}

	values := make([]string, 0, len(rows))
	for _, row := range rows {
		values = append(values, row.Category)
	}
	return values, nil
}

// CountUserDocuments counts the number of documents for a user
func (r *DocumentRepo) CountUserDocuments(ctx context.Context, userID string) (int64, error) {
	timer := utils.TrackDBOperation("count", "documents")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		utils.TrackError("database")
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}
