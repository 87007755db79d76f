package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"main/dto"
	"main/model"
	"main/repository"
	"main/services"
	"main/utils"
)

// DocumentStore is the slice of the persistence layer the document
// service needs. *repository.DocumentRepo is the production
// implementation; tests substitute an in-memory fake.
type DocumentStore interface {
	InsertDocument(ctx context.Context, doc *model.Document) error
	FindDocuments(ctx context.Context, userID, search, category string) ([]*model.Document, error)
	FindDocument(ctx context.Context, id, userID string) (*model.Document, error)
	UpdateDocument(ctx context.Context, id, userID string, doc *model.Document) error
	DeleteDocument(ctx context.Context, id, userID string) error
	ListCategoryValues(ctx context.Context, userID string) ([]string, error)
	CountUserDocuments(ctx context.Context, userID string) (int64, error)
}

var _ DocumentStore = (*repository.DocumentRepo)(nil)

// DocumentService implements the document access layer: owner-scoped
// CRUD, the category listing and cache invalidation after mutations.
type DocumentService struct {
	Store DocumentStore
	Cache *services.DocumentCache
}

const (
	maxTitleLength    = 200
	maxCategoryLength = 50
)

func validateDocument(doc *model.Document) error {
	if doc.Title == "" {
		return validationFailed("Title is required")
	}
	if utf8.RuneCountInString(doc.Title) > maxTitleLength {
		return validationFailed("Title must be less than 200 characters")
	}
	if doc.Content == "" {
		return validationFailed("Content is required")
	}
	if doc.Category == "" {
		return validationFailed("Category is required")
	}
	if utf8.RuneCountInString(doc.Category) > maxCategoryLength {
		return validationFailed("Category must be less than 50 characters")
	}
	return nil
}

// List returns the user's documents, most recently updated first,
// optionally narrowed by a case-insensitive substring search over
// title and content and an exact category match. Without a session it
// returns an empty list.
func (svc *DocumentService) List(ctx context.Context, userID, search, category string) ([]*model.Document, error) {
	if userID == "" {
		return []*model.Document{}, nil
	}

	if svc.Cache != nil {
		if docs, ok := svc.Cache.GetDocumentList(ctx, userID, search, category); ok {
			return docs, nil
		}
	}

	docs, err := svc.Store.FindDocuments(ctx, userID, search, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	utils.TrackDocumentOperation("list")

	if svc.Cache != nil {
		svc.Cache.SetDocumentList(ctx, userID, search, category, docs)
	}
	return docs, nil
}

// Get fetches a single owned document. Both a missing session and a
// missing document yield (nil, nil).
func (svc *DocumentService) Get(ctx context.Context, userID, id string) (*model.Document, error) {
	if userID == "" || id == "" {
		return nil, nil
	}

	if svc.Cache != nil {
		if doc, ok := svc.Cache.GetDocument(ctx, userID, id); ok {
			return doc, nil
		}
	}

	doc, err := svc.Store.FindDocument(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}

	if doc != nil && svc.Cache != nil {
		svc.Cache.SetDocument(ctx, userID, doc)
	}
	return doc, nil
}

// Create validates the input and stores a new document owned by the
// caller. Category defaults to "General", tags to an empty list.
func (svc *DocumentService) Create(ctx context.Context, userID string, req dto.CreateDocumentRequest) (*model.Document, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	now := time.Now().UTC()
	doc := &model.Document{
		ID:        utils.GenerateID(),
		UserID:    userID,
		Title:     strings.TrimSpace(req.Title),
		Content:   req.Content,
		Category:  strings.TrimSpace(req.Category),
		Tags:      NormalizeTags(req.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if doc.Category == "" {
		doc.Category = model.DefaultCategory
	}

	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	if err := svc.Store.InsertDocument(ctx, doc); err != nil {
		return nil, err
	}
	utils.TrackDocumentOperation("create")

	svc.invalidate(ctx, userID)
	return doc, nil
}

// Update merges only the provided fields into the stored document,
// validates the result and refreshes updated_at. Returns
// repository.ErrDocumentNotFound when the caller owns no such document.
func (svc *DocumentService) Update(ctx context.Context, userID, id string, req dto.UpdateDocumentRequest) (*model.Document, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	existing, err := svc.Store.FindDocument(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	if existing == nil {
		return nil, repository.ErrDocumentNotFound
	}

	merged := *existing
	if req.Title != nil {
		merged.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		merged.Content = *req.Content
	}
	if req.Category != nil {
		merged.Category = strings.TrimSpace(*req.Category)
	}
	if req.Tags != nil {
		merged.Tags = NormalizeTags(*req.Tags)
	}
	merged.UpdatedAt = time.Now().UTC()

	if err := validateDocument(&merged); err != nil {
		return nil, err
	}

	if err := svc.Store.UpdateDocument(ctx, id, userID, &merged); err != nil {
		return nil, err
	}
	utils.TrackDocumentOperation("update")

	svc.invalidate(ctx, userID)
	return &merged, nil
}

// Delete removes an owned document. Deleting a missing document is a
// no-op indistinguishable from success, so the operation is idempotent.
func (svc *DocumentService) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrUnauthenticated
	}

	if err := svc.Store.DeleteDocument(ctx, id, userID); err != nil {
		return err
	}
	utils.TrackDocumentOperation("delete")

	svc.invalidate(ctx, userID)
	return nil
}

// ListCategories returns the "All" sentinel followed by the user's
// distinct categories in first-seen order. Without a session, or when
// the user has no documents, it returns the default pair.
func (svc *DocumentService) ListCategories(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return []string{model.AllCategories, model.DefaultCategory}, nil
	}

	if svc.Cache != nil {
		if categories, ok := svc.Cache.GetCategories(ctx, userID); ok {
			return categories, nil
		}
	}

	values, err := svc.Store.ListCategoryValues(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := []string{model.AllCategories}
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			categories = append(categories, v)
		}
	}
	if len(categories) == 1 {
		categories = append(categories, model.DefaultCategory)
	}

	if svc.Cache != nil {
		svc.Cache.SetCategories(ctx, userID, categories)
	}
	return categories, nil
}

// CountDocuments reports how many documents the user owns.
func (svc *DocumentService) CountDocuments(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, nil
	}
	return svc.Store.CountUserDocuments(ctx, userID)
}

func (svc *DocumentService) invalidate(ctx context.Context, userID string) {
	if svc.Cache != nil {
		svc.Cache.InvalidateUser(ctx, userID)
	}
}
