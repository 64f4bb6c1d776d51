package mqtt

import (
	"fmt"
	"sync"

	coremqtt "github.com/ewoodward/gridshift/core/mqtt"
	"github.com/ewoodward/gridshift/core/results"
)

// ResultPublisher mirrors the core mqtt.ResultPublisher interface.
type ResultPublisher = coremqtt.ResultPublisher

// MockPublisher is a simple publisher used in tests.
type MockPublisher struct {
	Messages       map[string][]results.DayResult
	FailStrategies map[string]bool
	mu             sync.Mutex
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		Messages:       make(map[string][]results.DayResult),
		FailStrategies: make(map[string]bool),
	}
}

// PublishResult records the message or returns an error if configured to fail.
func (m *MockPublisher) PublishResult(res results.DayResult) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailStrategies[res.Strategy] {
		return "", fmt.Errorf("publish failed")
	}
	m.Messages[res.Strategy] = append(m.Messages[res.Strategy], res)
	return fmt.Sprintf("msg-%s-%s", res.Strategy, res.Date.Format("2006-01-02")), nil
}

// Published returns the recorded results for a strategy.
func (m *MockPublisher) Published(strategy string) []results.DayResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]results.DayResult, len(m.Messages[strategy]))
	copy(out, m.Messages[strategy])
	return out
}
