package stream

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/affectlab/facemeter/pkg/emotion"
)

// stubLive is an in-memory LiveSource.
type stubLive struct {
	mu     sync.Mutex
	reads  int
	closed bool

	// failAfter, when > 0, makes Read fail once that many reads
	// have succeeded.
	failAfter int
}

func (s *stubLive) Read() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAfter > 0 && s.reads >= s.failAfter {
		return nil, errors.New("camera disconnected")
	}
	s.reads++
	return []byte("frame"), nil
}

func (s *stubLive) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *stubLive) wasClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func testConfig() Config {
	return Config{Interval: 2 * time.Millisecond, WindowSize: 3, Mirror: false}
}

func happyClassifier() *emotion.Mock {
	return &emotion.Mock{
		ClassifyFunc: func([]byte) (emotion.Vector, error) {
			return emotion.Vector{emotion.Happy: 100}, nil
		},
	}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %s", msg)
}

func TestSampler_Lifecycle(t *testing.T) {
	s := New(happyClassifier(), testConfig())
	src := &stubLive{}

	if s.State() != StateIdle {
		t.Errorf("Expected idle state before start, got %v", s.State())
	}

	if err := s.Start(src); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if s.State() != StateRunning {
		t.Errorf("Expected running state, got %v", s.State())
	}
	if s.SessionID() == "" {
		t.Error("Expected a session id")
	}

	if err := s.Start(&stubLive{}); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("Expected ErrAlreadyRunning, got %v", err)
	}

	waitFor(t, func() bool { return len(s.History()) >= 2 }, "samples to accumulate")

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if s.State() != StateStopped {
		t.Errorf("Expected stopped state, got %v", s.State())
	}
	if !src.wasClosed() {
		t.Error("Expected the source to be closed on stop")
	}

	if err := s.Stop(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Expected ErrNotRunning after stop, got %v", err)
	}
}

func TestSampler_AccumulatesWindowAndHistory(t *testing.T) {
	s := New(happyClassifier(), testConfig())
	src := &stubLive{}

	if err := s.Start(src); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()

	waitFor(t, func() bool { return len(s.History()) >= 5 }, "5 samples")

	// The window is capped at 3 while the history keeps growing.
	if got := len(s.WindowSnapshot()); got != 3 {
		t.Errorf("Expected window length 3, got %d", got)
	}
	if got := len(s.History()); got < 5 {
		t.Errorf("Expected at least 5 history samples, got %d", got)
	}

	window := s.WindowSnapshot()
	for i := 1; i < len(window); i++ {
		if window[i].Timestamp < window[i-1].Timestamp {
			t.Error("Window snapshot should be ordered oldest first")
		}
	}

	latest := s.Latest()
	if latest.Confidence != 100.0 {
		t.Errorf("Expected latest confidence 100.0, got %v", latest.Confidence)
	}
}

func TestSampler_RetainsPreviousOnClassifyError(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	mock := &emotion.Mock{
		ClassifyFunc: func([]byte) (emotion.Vector, error) {
			mu.Lock()
			defer mu.Unlock()
			calls++
			if calls == 2 {
				return nil, errors.New("no face detected")
			}
			return emotion.Vector{emotion.Happy: 100}, nil
		},
	}

	s := New(mock, testConfig())
	if err := s.Start(&stubLive{}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()

	waitFor(t, func() bool { return len(s.History()) >= 3 }, "3 samples")
	s.Stop()

	history := s.History()
	first, second := history[0], history[1]

	if second.Confidence != first.Confidence || second.Nervousness != first.Nervousness {
		t.Errorf("Expected retained values (%v, %v), got (%v, %v)",
			first.Confidence, first.Nervousness, second.Confidence, second.Nervousness)
	}
	if second.Dominant != first.Dominant {
		t.Errorf("Expected retained dominant %q, got %q", first.Dominant, second.Dominant)
	}
	if second.Timestamp <= first.Timestamp {
		t.Error("Expected the retained sample to carry a fresh timestamp")
	}
}

func TestSampler_Reset(t *testing.T) {
	s := New(happyClassifier(), testConfig())
	if err := s.Start(&stubLive{}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()

	waitFor(t, func() bool { return len(s.History()) >= 3 }, "3 samples")

	before := s.StartedAt()
	s.Reset()

	if got := len(s.History()); got > 1 {
		t.Errorf("Expected at most 1 sample right after reset, got %d", got)
	}
	if !s.StartedAt().After(before) {
		t.Error("Expected reset to re-anchor the time origin")
	}

	// The loop keeps running after a reset.
	waitFor(t, func() bool { return len(s.History()) >= 2 }, "samples after reset")
}

func TestSampler_FatalReadFailure(t *testing.T) {
	s := New(happyClassifier(), testConfig())
	src := &stubLive{failAfter: 2}

	if err := s.Start(src); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for the session to end")
	}

	if s.State() != StateStopped {
		t.Errorf("Expected stopped state after a fatal read failure, got %v", s.State())
	}
	if !errors.Is(s.Err(), ErrFrameRead) {
		t.Errorf("Expected ErrFrameRead, got %v", s.Err())
	}
	if !src.wasClosed() {
		t.Error("Expected the source to be closed after a fatal failure")
	}

	// History collected before the failure is preserved.
	if got := len(s.History()); got != 2 {
		t.Errorf("Expected 2 samples before the failure, got %d", got)
	}
}

func TestSampler_Subscribe(t *testing.T) {
	s := New(happyClassifier(), testConfig())
	updates := s.Subscribe()

	if err := s.Start(&stubLive{}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer s.Stop()

	select {
	case u := <-updates:
		if len(u.Frame) == 0 {
			t.Error("Expected a display frame in the update")
		}
		if u.Sample.Confidence != 100.0 {
			t.Errorf("Expected confidence 100.0, got %v", u.Sample.Confidence)
		}
		if len(u.Window) == 0 {
			t.Error("Expected a window snapshot in the update")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for an update")
	}
}

func TestSampler_Restart(t *testing.T) {
	s := New(happyClassifier(), testConfig())

	if err := s.Start(&stubLive{}); err != nil {
		t.Fatalf("First start failed: %v", err)
	}
	waitFor(t, func() bool { return len(s.History()) >= 1 }, "a sample")
	firstID := s.SessionID()
	s.Stop()

	if err := s.Start(&stubLive{}); err != nil {
		t.Fatalf("Second start failed: %v", err)
	}
	defer s.Stop()

	if s.SessionID() == firstID {
		t.Error("Expected a fresh session id on restart")
	}
	if got := len(s.WindowSnapshot()); got > 1 {
		t.Errorf("Expected the window cleared on restart, got %d samples", got)
	}
}

func TestSessionReport(t *testing.T) {
	s := New(happyClassifier(), testConfig())
	if err := s.Start(&stubLive{}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	waitFor(t, func() bool { return len(s.History()) >= 4 }, "4 samples")
	s.Stop()

	rep, err := s.SessionReport()
	if err != nil {
		t.Fatalf("SessionReport failed: %v", err)
	}

	if rep.SessionID != s.SessionID() {
		t.Errorf("Expected session id %q, got %q", s.SessionID(), rep.SessionID)
	}
	if rep.Frames != len(s.History()) {
		t.Errorf("Expected %d frames, got %d", len(s.History()), rep.Frames)
	}
	if rep.Summary.ConfidenceMedian != 100.0 {
		t.Errorf("Expected median confidence 100.0, got %v", rep.Summary.ConfidenceMedian)
	}
	if rep.Report.Source != "live:"+rep.SessionID {
		t.Errorf("Unexpected report source: %q", rep.Report.Source)
	}
}

func TestSummary_EmptySession(t *testing.T) {
	s := New(happyClassifier(), testConfig())

	_, err := s.Summary()
	if err == nil {
		t.Error("Expected an error summarizing an empty session")
	}
}
