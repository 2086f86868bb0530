package stream

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/affectlab/facemeter/internal/log"
	"github.com/affectlab/facemeter/pkg/emotion"
	"github.com/affectlab/facemeter/pkg/sample"
)

// Sampler runs a long-lived analysis loop over a live source.
//
// The loop is the only writer to the window and history; Reset and all
// read accessors take the same mutex, so external access never observes
// a half-applied append. Observers only ever receive copies.
type Sampler struct {
	classifier emotion.Classifier
	cfg        Config

	mu        sync.Mutex
	state     State
	sessionID string
	source    LiveSource
	window    *sample.Window
	history   *sample.Table
	startAt   time.Time
	last      sample.Sample
	err       error

	stopCh chan struct{}
	done   chan struct{}

	subMu sync.Mutex
	subs  []chan Update
}

// New creates a stream sampler using the given classifier.
func New(classifier emotion.Classifier, cfg Config) *Sampler {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = DefaultConfig().WindowSize
	}
	return &Sampler{
		classifier: classifier,
		cfg:        cfg,
		state:      StateIdle,
		window:     sample.NewWindow(cfg.WindowSize),
		history:    sample.NewTable(),
		last:       sample.NeutralFallback(0),
	}
}

// Subscribe registers an observer. The returned channel receives an
// Update after every tick; slow consumers have updates dropped rather
// than blocking the loop. Subscriptions survive session restarts.
func (s *Sampler) Subscribe() <-chan Update {
	ch := make(chan Update, 8)
	s.subMu.Lock()
	s.subs = append(s.subs, ch)
	s.subMu.Unlock()
	return ch
}

// Start begins a new session over src and launches the analysis loop.
// Returns ErrAlreadyRunning if a session is active. The sampler takes
// ownership of src and closes it when the loop exits.
func (s *Sampler) Start(src LiveSource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRunning {
		return ErrAlreadyRunning
	}

	s.source = src
	s.sessionID = uuid.NewString()
	s.err = nil
	s.resetLocked()
	s.stopCh = make(chan struct{})
	s.done = make(chan struct{})
	s.state = StateRunning

	log.Info("stream session started",
		"session_id", s.sessionID, "interval", s.cfg.Interval, "window", s.cfg.WindowSize)

	go s.loop(s.stopCh, s.done)
	return nil
}

// Stop signals the loop to exit after its current iteration, waits for
// it, and releases the live source. Returns ErrNotRunning when no
// session is active.
func (s *Sampler) Stop() error {
	s.mu.Lock()
	if s.state != StateRunning {
		s.mu.Unlock()
		return ErrNotRunning
	}
	select {
	case <-s.stopCh:
		// Stop already in flight.
	default:
		close(s.stopCh)
	}
	done := s.done
	s.mu.Unlock()

	<-done
	return nil
}

// Reset clears both the window and the history and re-anchors the
// session time origin to now. Serialized against the loop's append, so
// it is safe to call at any time.
func (s *Sampler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	log.Info("stream session reset", "session_id", s.sessionID)
}

func (s *Sampler) resetLocked() {
	s.window.Reset()
	s.history.Reset()
	s.startAt = time.Now()
	s.last = sample.NeutralFallback(0)
}

// State returns the current lifecycle state.
func (s *Sampler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SessionID returns the id of the current (or most recent) session.
func (s *Sampler) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// Err returns the fatal error that ended the session, if any.
func (s *Sampler) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Done returns a channel closed when the current session's loop exits.
// Returns nil if no session was ever started.
func (s *Sampler) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Latest returns the most recent sample.
func (s *Sampler) Latest() sample.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// WindowSnapshot returns a copy of the sliding window, oldest first.
func (s *Sampler) WindowSnapshot() []sample.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window.Snapshot()
}

// History returns a copy of the unbounded session history.
func (s *Sampler) History() []sample.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Samples()
}

// StartedAt returns the current session's time origin.
func (s *Sampler) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startAt
}

// loop runs until stopped or a fatal source failure. stopCh and done are
// passed in so a later Start cannot race with a finishing loop.
func (s *Sampler) loop(stopCh chan struct{}, done chan struct{}) {
	defer func() {
		s.mu.Lock()
		s.source.Close()
		s.state = StateStopped
		id := s.sessionID
		s.mu.Unlock()
		close(done)
		log.Info("stream session ended", "session_id", id)
	}()

	timer := time.NewTimer(s.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-stopCh:
			return
		default:
		}

		if !s.tick() {
			return
		}

		// Fixed rate limit between iterations.
		timer.Reset(s.cfg.Interval)
		select {
		case <-stopCh:
			return
		case <-timer.C:
		}
	}
}

// tick performs one iteration: read, classify, accumulate, publish.
// Returns false when the session must end.
func (s *Sampler) tick() bool {
	frame, err := s.source.Read()
	if err != nil {
		s.mu.Lock()
		s.err = fmt.Errorf("%w: %v", ErrFrameRead, err)
		s.mu.Unlock()
		log.Error("live frame read failed, ending session", "error", err)
		return false
	}

	// The classifier call is the dominant blocking point; it runs
	// outside the mutex so Reset stays responsive.
	v, cerr := s.classifier.Classify(frame)

	s.mu.Lock()
	elapsed := time.Since(s.startAt).Seconds()
	var smp sample.Sample
	if cerr != nil {
		// Retain the previous values for this tick. Live continuity
		// matters more than per-tick independence.
		smp = s.last
		smp.Timestamp = elapsed
		log.Debug("classification failed, retaining previous sample", "error", cerr)
	} else {
		smp = sample.New(elapsed, v)
	}

	s.window.Push(smp)
	s.history.Append(smp)
	s.last = smp
	window := s.window.Snapshot()
	s.mu.Unlock()

	display := frame
	if s.cfg.Mirror {
		display = MirrorJPEG(frame)
	}
	s.publish(Update{Frame: display, Sample: smp, Window: window})
	return true
}

// publish fans an update out to all subscribers without blocking.
func (s *Sampler) publish(u Update) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- u:
		default:
			// Subscriber is not keeping up; drop this update.
		}
	}
}
