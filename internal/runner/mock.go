package runner

import (
	"context"
	"sync"
)

// MockRunner records command lines instead of running them.
// A line found in Errors fails with the mapped error.
type MockRunner struct {
	mu       sync.Mutex
	Commands []string
	Errors   map[string]error
}

var _ Runner = (*MockRunner)(nil)

// NewMockRunner returns an empty MockRunner.
func NewMockRunner() *MockRunner {
	return &MockRunner{Errors: make(map[string]error)}
}

func (m *MockRunner) Run(ctx context.Context, line string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Commands = append(m.Commands, line)
	return m.Errors[line]
}

// Ran returns a copy of the recorded command lines.
func (m *MockRunner) Ran() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Commands...)
}
