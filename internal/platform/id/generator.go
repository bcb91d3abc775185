package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const (
	defaultSize = 8
	maxLength   = 64
)

// Generator creates opaque IDs for request correlation.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator returns hex encoded random IDs of size bytes.
type RandomGenerator struct {
	size int
}

func NewRandomGenerator(size int) *RandomGenerator {
	if size <= 0 {
		size = defaultSize
	}
	return &RandomGenerator{size: size}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, g.size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// Accept reports whether a caller supplied ID can be propagated as is:
// non-empty, at most 64 bytes, and limited to [A-Za-z0-9._-].
func Accept(raw string) bool {
	if raw == "" || len(raw) > maxLength {
		return false
	}
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
