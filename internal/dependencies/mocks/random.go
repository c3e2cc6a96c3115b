package mocks

import (
	"fmt"

	"github.com/tilematch/backend/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// StringResults is a queue of results to return from String
	StringResults []string
	stringIndex   int

	fallbackCount int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// String returns the next queued result. When the queue is empty it returns
// a sequential placeholder of the requested length, so generated IDs stay
// unique without every test having to queue values.
func (r *MockRandom) String(length int, alphabet string) string {
	if r.stringIndex >= len(r.StringResults) {
		r.fallbackCount++
		return fmt.Sprintf("%0*d", length, r.fallbackCount)
	}
	result := r.StringResults[r.stringIndex]
	r.stringIndex++
	return result
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.StringResults = append(r.StringResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.StringResults = nil
	r.stringIndex = 0
	r.fallbackCount = 0
}
