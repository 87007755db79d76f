package usecase

import (
	"sort"

	"main/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering of a fetched document list.
type SortKey string

const (
	SortByUpdated SortKey = "updated" // most recently updated first (default)
	SortByCreated SortKey = "created" // most recently created first
	SortByTitle   SortKey = "title"   // title ascending, locale-aware
)

// ParseSortKey maps a query parameter to a sort key, falling back to
// the default ordering for anything unrecognized.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortByCreated:
		return SortByCreated
	case SortByTitle:
		return SortByTitle
	default:
		return SortByUpdated
	}
}

// SortDocuments returns a new slice ordered by the given key. The sort
// is stable, so equal keys keep their incoming order and repeated calls
// on unchanged input produce identical results.
func SortDocuments(docs []*model.Document, key SortKey) []*model.Document {
	sorted := make([]*model.Document, len(docs))
	copy(sorted, docs)

	switch key {
	case SortByTitle:
		// Collators buffer internally, so build one per call.
		collator := collate.New(language.Und)
		sort.SliceStable(sorted, func(i, j int) bool {
			return collator.CompareString(sorted[i].Title, sorted[j].Title) < 0
		})
	case SortByCreated:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
		})
	}
	return sorted
}
