package usecase

import (
	"testing"
	"time"

	"main/model"

	"github.com/stretchr/testify/assert"
)

func docWithTimes(id, title string, created, updated time.Time) *model.Document {
	return &model.Document{
		ID:        id,
		Title:     title,
		CreatedAt: created,
		UpdatedAt: updated,
	}
}

func ids(docs []*model.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}

func TestSortDocuments(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	a := docWithTimes("a", "Banana", base, base.Add(3*time.Hour))
	b := docWithTimes("b", "apple", base.Add(1*time.Hour), base.Add(1*time.Hour))
	c := docWithTimes("c", "cherry", base.Add(2*time.Hour), base.Add(2*time.Hour))
	input := []*model.Document{a, b, c}

	t.Run("updated descending is the default", func(t *testing.T) {
		sorted := SortDocuments(input, SortByUpdated)
		assert.Equal(t, []string{"a", "c", "b"}, ids(sorted))
		for i := 1; i < len(sorted); i++ {
			assert.False(t, sorted[i].UpdatedAt.After(sorted[i-1].UpdatedAt))
		}
	})

	t.Run("created descending", func(t *testing.T) {
		sorted := SortDocuments(input, SortByCreated)
		assert.Equal(t, []string{"c", "b", "a"}, ids(sorted))
	})

	t.Run("title ascending is locale aware", func(t *testing.T) {
		// Byte order would put "Banana" before "apple"
		sorted := SortDocuments(input, SortByTitle)
		assert.Equal(t, []string{"b", "a", "c"}, ids(sorted))
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		SortDocuments(input, SortByTitle)
		assert.Equal(t, []string{"a", "b", "c"}, ids(input))
	})

	t.Run("stable for equal keys", func(t *testing.T) {
		same := base.Add(5 * time.Hour)
		x := docWithTimes("x", "dup", base, same)
		y := docWithTimes("y", "dup", base, same)
		z := docWithTimes("z", "dup", base, same)

		first := SortDocuments([]*model.Document{x, y, z}, SortByUpdated)
		second := SortDocuments([]*model.Document{x, y, z}, SortByUpdated)
		assert.Equal(t, []string{"x", "y", "z"}, ids(first))
		assert.Equal(t, ids(first), ids(second))

		byTitle := SortDocuments([]*model.Document{x, y, z}, SortByTitle)
		assert.Equal(t, []string{"x", "y", "z"}, ids(byTitle))
	})
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortByUpdated, ParseSortKey("updated"))
	assert.Equal(t, SortByCreated, ParseSortKey("created"))
	assert.Equal(t, SortByTitle, ParseSortKey("title"))
	assert.Equal(t, SortByUpdated, ParseSortKey(""))
	assert.Equal(t, SortByUpdated, ParseSortKey("bogus"))
}
