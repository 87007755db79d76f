package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Sup3r$ecret")
	require.NoError(t, err)
	require.Contains(t, hash, "$")
	assert.NotContains(t, hash, "Sup3r$ecret")

	ok, err := VerifyPassword(hash, "Sup3r$ecret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong-password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordUsesFreshSalt(t *testing.T) {
	first, err := HashPassword("same-input1!")
	require.NoError(t, err)
	second, err := HashPassword("same-input1!")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	tests := []struct {
		name   string
		stored string
	}{
		{"no separator", "justonechunk"},
		{"too many parts", strings.Repeat("a$", 3)},
		{"bad base64 salt", "!!!$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyPassword(tt.stored, "anything")
			assert.Error(t, err)
		})
	}
}
