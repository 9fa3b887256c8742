// Package id generates entity identifiers and recognises client placeholder ids.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"

	"issueflow/internal/shared/constants"
)

// Base62 alphabet: 0-9, A-Z, a-z
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// DefaultLength is the length of the random part of a short id.
const DefaultLength = 12

// New returns a fresh UUID string for a persisted entity.
func New() string {
	return uuid.NewString()
}

// IsValid reports whether s parses as a UUID.
func IsValid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// Generate creates a random Base62 string with the specified length.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// NewTempID returns a client-side placeholder such as "temp-x9K2mQ4pL0aB".
func NewTempID() string {
	suffix, err := Generate(DefaultLength)
	if err != nil {
		suffix = uuid.NewString()
	}
	return constants.TempIDPrefix + suffix
}

// IsTemp reports whether an id is a client placeholder that was never stored.
func IsTemp(s string) bool {
	return strings.HasPrefix(s, constants.TempIDPrefix)
}
