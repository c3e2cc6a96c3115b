package random

import (
	"crypto/rand"
	"math/big"
)

// Random provides random string generation that can be mocked for testing.
// The system uses it for opaque identifiers (user IDs, session tokens), so
// the interface is string-shaped rather than exposing raw integers.
type Random interface {
	// String generates a random string of the given length from the given alphabet
	String(length int, alphabet string) string
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// String generates a random string of the given length from the given alphabet
func (r *CryptoRandom) String(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}
	result := make([]byte, length)
	for i := 0; i < length; i++ {
		result[i] = alphabet[r.intn(len(alphabet))]
	}
	return string(result)
}

// intn returns a cryptographically random int in [0, n)
func (r *CryptoRandom) intn(n int) int {
	if n <= 0 {
		return 0
	}
	max := big.NewInt(int64(n))
	result, err := rand.Int(rand.Reader, max)
	if err != nil {
		// crypto/rand read failures are not recoverable here
		return 0
	}
	return int(result.Int64())
}
