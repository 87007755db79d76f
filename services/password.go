package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters
const (
	memory      = 64 * 1024
	iterations  = 3
	parallelism = 2
	keyLength   = 32
)

// HashPassword hashes the password with Argon2id and returns the
// encoded salt$hash pair.
func HashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.New("failed to generate salt")
	}

	hash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, keyLength)

	encodedSalt := base64.RawStdEncoding.EncodeToString(salt)
	encodedHash := base64.RawStdEncoding.EncodeToString(hash)

	return encodedSalt + "$" + encodedHash, nil
}

// VerifyPassword verifies if the provided password matches the stored hash
func VerifyPassword(storedPassword, providedPassword string) (bool, error) {
	parts := strings.Split(storedPassword, "$")
	if len(parts) != 2 {
		return false, errors.New("invalid stored password format")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[0])
	if err != nil {
		return false, err
	}

	storedHash, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil {
		return false, err
	}

	computedHash := argon2.IDKey([]byte(providedPassword), salt, iterations, memory, parallelism, keyLength)

	return subtle.ConstantTimeCompare(computedHash, storedHash) == 1, nil
}
