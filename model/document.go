package model

import (
	"time"
)

type Document struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	Category  string    `bson:"category" json:"category"`
	Tags      []string  `bson:"tags" json:"tags"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DefaultCategory is assigned when a document is created without one.
const DefaultCategory = "General"

// AllCategories is the sentinel meaning "no category filter".
const AllCategories = "All"
