package engine

import (
	"context"
	"sync"

	"github.com/AlexRiks/AccountingDesk-IA/internal/model"
)

// MockOracle is a test implementation of the Oracle interface. Each call
// returns the configured answer or error and records what it was asked.
type MockOracle struct {
	Answer string
	Err    error

	calls []MockOracleCall
	mu    sync.Mutex
}

// MockOracleCall records details of a single classification request.
type MockOracleCall struct {
	Description string
	Candidates  []model.CategoryEntry
}

// NewMockOracle creates a mock oracle that always answers with answer.
func NewMockOracle(answer string) *MockOracle {
	return &MockOracle{Answer: answer}
}

// Classify returns the configured answer or error and records the call.
func (m *MockOracle) Classify(_ context.Context, description string, candidates []model.CategoryEntry) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, MockOracleCall{
		Description: description,
		Candidates:  candidates,
	})

	if m.Err != nil {
		return "", m.Err
	}
	return m.Answer, nil
}

// Calls returns a copy of the recorded classification requests.
func (m *MockOracle) Calls() []MockOracleCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]MockOracleCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// CallCount returns how many classification requests were made.
func (m *MockOracle) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
