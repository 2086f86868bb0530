// Package stream samples a live camera feed at a fixed cadence and keeps
// two views of the session: a fixed-capacity sliding window for live
// display and an unbounded history for end-of-session reporting.
package stream

import (
	"errors"
	"time"

	"github.com/affectlab/facemeter/pkg/sample"
)

// Sentinel errors for state machine misuse and fatal session failures.
var (
	// ErrAlreadyRunning is returned when Start is called while running.
	ErrAlreadyRunning = errors.New("stream: sampler already running")

	// ErrNotRunning is returned when Stop is called while not running.
	ErrNotRunning = errors.New("stream: sampler not running")

	// ErrFrameRead is the fatal session error when the live source stops
	// delivering frames.
	ErrFrameRead = errors.New("stream: frame read failed")

	// ErrSourceUnavailable is returned when the camera cannot be opened.
	ErrSourceUnavailable = errors.New("stream: cannot open live source")
)

// State describes the sampler lifecycle: Idle until the first Start,
// Running while the loop is active, Stopped after Stop or a fatal error.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// LiveSource provides frames from a live, non-seekable source.
type LiveSource interface {
	// Read returns the next frame as JPEG bytes.
	Read() ([]byte, error)

	// Close releases the source.
	Close() error
}

// Update is published to subscribers after every tick.
type Update struct {
	// Frame is the display frame (mirrored when configured).
	Frame []byte

	// Sample is the latest scored sample.
	Sample sample.Sample

	// Window is a snapshot of the sliding window, oldest first.
	Window []sample.Sample
}

// Config holds the tunable parameters of a stream session.
type Config struct {
	// Interval is the pause between iterations. This is a deliberate
	// rate limit, not best-effort pacing.
	Interval time.Duration

	// WindowSize is the sliding window capacity in samples.
	WindowSize int

	// Mirror flips published display frames horizontally.
	Mirror bool
}

// DefaultConfig returns the standard live-analysis configuration:
// roughly two samples per second and a one-minute display window.
func DefaultConfig() Config {
	return Config{
		Interval:   500 * time.Millisecond,
		WindowSize: 60,
		Mirror:     true,
	}
}
