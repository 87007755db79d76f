package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagListAdd(t *testing.T) {
	tags := NewTagList(nil)

	assert.True(t, tags.Add("work"))
	assert.Equal(t, []string{"work"}, tags.Values())

	t.Run("duplicate is a no-op", func(t *testing.T) {
		assert.False(t, tags.Add("work"))
		assert.Equal(t, []string{"work"}, tags.Values())
	})

	t.Run("input is trimmed before dedup", func(t *testing.T) {
		assert.False(t, tags.Add("  work  "))
		assert.Equal(t, []string{"work"}, tags.Values())
	})

	t.Run("whitespace-only is rejected", func(t *testing.T) {
		assert.False(t, tags.Add("   "))
		assert.False(t, tags.Add(""))
		assert.Equal(t, []string{"work"}, tags.Values())
	})

	t.Run("dedup is case-sensitive", func(t *testing.T) {
		assert.True(t, tags.Add("Work"))
		assert.Equal(t, []string{"work", "Work"}, tags.Values())
	})

	t.Run("appends preserve order", func(t *testing.T) {
		assert.True(t, tags.Add("ideas"))
		assert.Equal(t, []string{"work", "Work", "ideas"}, tags.Values())
	})
}

func TestTagListRemove(t *testing.T) {
	tags := NewTagList([]string{"a", "b", "c"})

	assert.True(t, tags.Remove("b"))
	assert.Equal(t, []string{"a", "c"}, tags.Values())

	assert.False(t, tags.Remove("b"))
	assert.False(t, tags.Remove("missing"))
	assert.Equal(t, []string{"a", "c"}, tags.Values())
}

func TestTagListValuesIsACopy(t *testing.T) {
	tags := NewTagList([]string{"a", "b"})
	values := tags.Values()
	values[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, tags.Values())
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"nil yields empty slice", nil, []string{}},
		{"trims and drops empties", []string{" a ", "", "  ", "b"}, []string{"a", "b"}},
		{"dedups first-seen", []string{"x", "y", "x", "y", "z"}, []string{"x", "y", "z"}},
		{"case-sensitive dedup", []string{"go", "Go"}, []string{"go", "Go"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTags(tt.input))
		})
	}
}
