package usecase

import "strings"

// TagList is the ordered set of distinct tags being composed for a
// document. It has no persistence of its own; the final values are
// submitted as part of create or update.
type TagList struct {
	tags []string
}

func NewTagList(initial []string) *TagList {
	return &TagList{tags: NormalizeTags(initial)}
}

// Add trims the raw input and appends it. Empty results and values
// already present (case-sensitive) are ignored.
func (t *TagList) Add(raw string) bool {
	tag := strings.TrimSpace(raw)
	if tag == "" {
		return false
	}
	for _, existing := range t.tags {
		if existing == tag {
			return false
		}
	}
	t.tags = append(t.tags, tag)
	return true
}

// Remove drops the matching tag. The dedup invariant means there is at
// most one.
func (t *TagList) Remove(value string) bool {
	for i, existing := range t.tags {
		if existing == value {
			t.tags = append(t.tags[:i], t.tags[i+1:]...)
			return true
		}
	}
	return false
}

// Values returns a copy of the current tags in insertion order.
func (t *TagList) Values() []string {
	out := make([]string, len(t.tags))
	copy(out, t.tags)
	return out
}

// NormalizeTags trims every tag, drops empties and deduplicates
// case-sensitively while preserving first-seen order. Nil input yields
// an empty, non-nil slice.
func NormalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		normalized = append(normalized, trimmed)
	}
	return normalized
}
