package llm

import (
	"context"
	"sync"
)

// MockClient is a scripted Client for tests and offline runs.
type MockClient struct {
	// ContentFunc answers GenerateContent; nil returns "".
	ContentFunc func(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// JSONFunc answers GenerateJSON; nil returns "{}".
	JSONFunc func(ctx context.Context, prompt string, tier ModelTier) (string, error)
	Model    string

	mu      sync.Mutex
	prompts []string
	closed  bool
}

// GenerateContent records the prompt and delegates to ContentFunc.
func (m *MockClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	m.record(prompt)
	if m.ContentFunc == nil {
		return "", nil
	}
	return m.ContentFunc(ctx, prompt, tier)
}

// GenerateJSON records the prompt and delegates to JSONFunc.
func (m *MockClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	m.record(prompt)
	if m.JSONFunc == nil {
		return "{}", nil
	}
	return m.JSONFunc(ctx, prompt, tier)
}

// GetModel returns Model.
func (m *MockClient) GetModel(ModelTier) string {
	if m.Model == "" {
		return "mock"
	}
	return m.Model
}

// Close marks the client closed.
func (m *MockClient) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

// Prompts returns every prompt received so far.
func (m *MockClient) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Closed reports whether Close was called.
func (m *MockClient) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *MockClient) record(prompt string) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
}
