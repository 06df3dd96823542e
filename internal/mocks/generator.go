package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/promptlab/internal/generation"
)

// MockTextGenerator implements generation.TextGenerator for testing.
//
// Generate resolves its result in this order: GenerateFn if set, then Err,
// then the next entry of Responses. Once Responses is exhausted the last
// response is repeated.
type MockTextGenerator struct {
	ProviderName string

	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, req generation.Request) (string, error)

	// Responses are returned in call order.
	Responses []string
	Err       error

	mu       sync.Mutex
	requests []generation.Request
}

// NewMockTextGenerator creates a generator that answers with responses in order.
func NewMockTextGenerator(name string, responses ...string) *MockTextGenerator {
	return &MockTextGenerator{ProviderName: name, Responses: responses}
}

// NewFailingTextGenerator creates a generator whose every call fails with err.
func NewFailingTextGenerator(name string, err error) *MockTextGenerator {
	return &MockTextGenerator{ProviderName: name, Err: err}
}

// Name implements generation.TextGenerator.
func (m *MockTextGenerator) Name() string {
	return m.ProviderName
}

// Generate implements generation.TextGenerator.
func (m *MockTextGenerator) Generate(ctx context.Context, req generation.Request) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	n := len(m.requests)
	m.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, req)
	}
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", nil
	}
	if n > len(m.Responses) {
		n = len(m.Responses)
	}
	return m.Responses[n-1], nil
}

// CallCount returns how many times Generate was called.
func (m *MockTextGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns a copy of every request passed to Generate.
func (m *MockTextGenerator) Requests() []generation.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]generation.Request, len(m.requests))
	copy(out, m.requests)
	return out
}

var _ generation.TextGenerator = (*MockTextGenerator)(nil)
