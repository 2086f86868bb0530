package emotion

import (
	"sync"
	"time"
)

// Mock implements Classifier for testing.
// All methods can be customized via function fields.
type Mock struct {
	// ClassifyFunc is called when Classify is invoked.
	// If nil, returns the neutral vector.
	ClassifyFunc func(jpeg []byte) (Vector, error)

	// CloseFunc is called when Close is invoked.
	// If nil, returns nil.
	CloseFunc func() error

	// Tracking
	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a method invocation for verification.
type MockCall struct {
	Method    string
	FrameSize int
	Time      time.Time
}

// NewMock creates a new mock classifier with sensible defaults.
func NewMock() *Mock {
	return &Mock{
		ClassifyFunc: func(jpeg []byte) (Vector, error) {
			return NeutralVector(), nil
		},
	}
}

// Classify calls ClassifyFunc and records the call.
func (m *Mock) Classify(jpeg []byte) (Vector, error) {
	m.recordCall("Classify", len(jpeg))
	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(jpeg)
	}
	return NeutralVector(), nil
}

// Close calls CloseFunc and records the call.
func (m *Mock) Close() error {
	m.recordCall("Close", 0)
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Calls returns a copy of all recorded calls.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of calls to the given method.
func (m *Mock) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (m *Mock) recordCall(method string, frameSize int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{Method: method, FrameSize: frameSize, Time: time.Now()})
}
