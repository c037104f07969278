package analysis

import (
	"context"
	"sync"
)

// MockOracle implements TextOracle for testing purposes. It replays a
// fixed sequence of responses and errors and records every prompt.
type MockOracle struct {
	mu        sync.Mutex
	Responses []string
	Errs      []error
	calls     int
	Prompts   []string
	Systems   []string
	JSONCalls int
}

// GenerateText returns the next canned response or error.
func (m *MockOracle) GenerateText(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	return m.next(systemPrompt, userPrompt, false)
}

// GenerateJSON behaves like GenerateText and counts JSON-mode calls.
func (m *MockOracle) GenerateJSON(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	return m.next(systemPrompt, userPrompt, true)
}

func (m *MockOracle) next(systemPrompt, userPrompt string, jsonMode bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, userPrompt)
	m.Systems = append(m.Systems, systemPrompt)
	if jsonMode {
		m.JSONCalls++
	}
	i := m.calls
	m.calls++
	if i < len(m.Errs) && m.Errs[i] != nil {
		return "", m.Errs[i]
	}
	if i < len(m.Responses) {
		return m.Responses[i], nil
	}
	if len(m.Responses) > 0 {
		return m.Responses[len(m.Responses)-1], nil
	}
	return "", nil
}

// Calls returns how many requests the oracle has served.
func (m *MockOracle) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
