package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/affectlab/facemeter/pkg/emotion"
	"github.com/affectlab/facemeter/pkg/stream"
)

type stubLive struct{ closed bool }

func (s *stubLive) Read() ([]byte, error) { return []byte("frame"), nil }
func (s *stubLive) Close() error {
	s.closed = true
	return nil
}

func testServer(t *testing.T) (*Server, *stream.Sampler) {
	t.Helper()
	classifier := &emotion.Mock{
		ClassifyFunc: func([]byte) (emotion.Vector, error) {
			return emotion.Vector{emotion.Happy: 100}, nil
		},
	}
	sampler := stream.New(classifier, stream.Config{
		Interval:   2 * time.Millisecond,
		WindowSize: 3,
	})
	opener := func() (stream.LiveSource, error) { return &stubLive{}, nil }
	return NewServer("0", t.TempDir(), sampler, opener), sampler
}

func doJSON(t *testing.T, s *Server, method, path string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, path, nil)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	resp, err := s.app.Test(req, 5000)
	if err != nil {
		t.Fatalf("Request %s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("Failed to read body: %v", err)
		}
		if err := json.Unmarshal(body, out); err != nil {
			t.Fatalf("Failed to decode %q: %v", body, err)
		}
	}
	return resp.StatusCode
}

func TestStatus_Idle(t *testing.T) {
	s, _ := testServer(t)

	var got map[string]any
	code := doJSON(t, s, http.MethodGet, "/api/status", &got)

	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	if got["state"] != "idle" {
		t.Errorf("Expected idle state, got %v", got["state"])
	}
}

func TestStats_EmptySession(t *testing.T) {
	s, _ := testServer(t)

	code := doJSON(t, s, http.MethodGet, "/api/stats", nil)

	if code != http.StatusConflict {
		t.Errorf("Expected 409 before any samples, got %d", code)
	}
}

func TestReport_EmptySession(t *testing.T) {
	s, _ := testServer(t)

	code := doJSON(t, s, http.MethodGet, "/api/report", nil)

	if code != http.StatusConflict {
		t.Errorf("Expected 409 before any samples, got %d", code)
	}
}

func TestStartStopFlow(t *testing.T) {
	s, sampler := testServer(t)

	var started map[string]any
	code := doJSON(t, s, http.MethodPost, "/api/start", &started)
	if code != http.StatusOK {
		t.Fatalf("Expected 200 on start, got %d", code)
	}
	if started["session_id"] == "" {
		t.Error("Expected a session id")
	}

	// A second start conflicts with the active session.
	code = doJSON(t, s, http.MethodPost, "/api/start", nil)
	if code != http.StatusConflict {
		t.Errorf("Expected 409 on double start, got %d", code)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && len(sampler.History()) < 2 {
		time.Sleep(time.Millisecond)
	}
	if len(sampler.History()) < 2 {
		t.Fatal("Timed out waiting for samples")
	}

	var summary map[string]any
	code = doJSON(t, s, http.MethodGet, "/api/stats", &summary)
	if code != http.StatusOK {
		t.Fatalf("Expected 200 from stats, got %d", code)
	}
	if summary["confidence_median"] != 100.0 {
		t.Errorf("Expected median 100, got %v", summary["confidence_median"])
	}

	code = doJSON(t, s, http.MethodPost, "/api/stop", nil)
	if code != http.StatusOK {
		t.Fatalf("Expected 200 on stop, got %d", code)
	}

	code = doJSON(t, s, http.MethodPost, "/api/stop", nil)
	if code != http.StatusConflict {
		t.Errorf("Expected 409 on double stop, got %d", code)
	}
}

func TestStart_SourceUnavailable(t *testing.T) {
	s, _ := testServer(t)
	s.openSource = func() (stream.LiveSource, error) {
		return nil, errors.New("camera busy")
	}

	code := doJSON(t, s, http.MethodPost, "/api/start", nil)

	if code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 when the source cannot open, got %d", code)
	}
}

func TestWindow(t *testing.T) {
	s, _ := testServer(t)

	var got []any
	code := doJSON(t, s, http.MethodGet, "/api/window", &got)

	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	if len(got) != 0 {
		t.Errorf("Expected an empty window before start, got %d entries", len(got))
	}
}

func TestExport(t *testing.T) {
	s, sampler := testServer(t)

	if code := doJSON(t, s, http.MethodPost, "/api/start", nil); code != http.StatusOK {
		t.Fatalf("Start failed with %d", code)
	}
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && len(sampler.History()) < 1 {
		time.Sleep(time.Millisecond)
	}
	doJSON(t, s, http.MethodPost, "/api/stop", nil)

	var got map[string]string
	code := doJSON(t, s, http.MethodPost, "/api/export", &got)

	if code != http.StatusOK {
		t.Fatalf("Expected 200 on export, got %d", code)
	}
	if !strings.Contains(got["path"], "realtime_emotion_analysis_") {
		t.Errorf("Unexpected export path: %q", got["path"])
	}
}

func TestReset(t *testing.T) {
	s, sampler := testServer(t)

	if code := doJSON(t, s, http.MethodPost, "/api/start", nil); code != http.StatusOK {
		t.Fatalf("Start failed with %d", code)
	}
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && len(sampler.History()) < 2 {
		time.Sleep(time.Millisecond)
	}

	code := doJSON(t, s, http.MethodPost, "/api/reset", nil)
	if code != http.StatusOK {
		t.Fatalf("Expected 200 on reset, got %d", code)
	}

	doJSON(t, s, http.MethodPost, "/api/stop", nil)
}
