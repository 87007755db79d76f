package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a new opaque identifier for users, sessions and
// documents. IDs are assigned once at creation and never change.
func GenerateID() string {
	return uuid.New().String()
}
