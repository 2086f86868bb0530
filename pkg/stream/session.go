package stream

import (
	"time"

	"github.com/affectlab/facemeter/pkg/report"
	"github.com/affectlab/facemeter/pkg/stats"
)

// SessionReport is the end-of-session result built from the unbounded
// history, so it is never lossy even though the display window is.
type SessionReport struct {
	SessionID string    `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`

	// Frames is the number of samples collected.
	Frames int `json:"frames"`

	// Duration is the elapsed session time in seconds.
	Duration float64 `json:"duration_seconds"`

	// Rate is the effective sampling rate in samples per second.
	Rate float64 `json:"analysis_rate"`

	Summary stats.Summary `json:"summary"`
	Report  report.Report `json:"report"`
}

// Summary aggregates the current session history.
// Returns stats.ErrEmptyInput before the first sample lands.
func (s *Sampler) Summary() (stats.Summary, error) {
	return stats.Summarize(s.History())
}

// SessionReport builds the full end-of-session report from the history.
func (s *Sampler) SessionReport() (SessionReport, error) {
	history := s.History()
	summary, err := stats.Summarize(history)
	if err != nil {
		return SessionReport{}, err
	}

	s.mu.Lock()
	id := s.sessionID
	startAt := s.startAt
	s.mu.Unlock()

	duration := summary.TotalDuration
	rate := 0.0
	if duration > 0 {
		rate = float64(len(history)) / duration
	}

	return SessionReport{
		SessionID: id,
		StartedAt: startAt,
		EndedAt:   startAt.Add(time.Duration(duration * float64(time.Second))),
		Frames:    len(history),
		Duration:  duration,
		Rate:      rate,
		Summary:   summary,
		Report:    report.Build("live:"+id, history, summary),
	}, nil
}

// ExportCSV writes the session history to path in the standard flat
// export format.
func (s *Sampler) ExportCSV(path string) error {
	return report.ExportCSV(path, s.History())
}
