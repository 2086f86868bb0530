// Package sample defines scored samples and the containers the two
// sampling modes accumulate them into: an unbounded append-only table for
// batch runs and session history, and a fixed-capacity sliding window for
// live display.
package sample

import (
	"github.com/affectlab/facemeter/pkg/emotion"
	"github.com/affectlab/facemeter/pkg/score"
)

// Sample is one scored observation. Immutable once created.
type Sample struct {
	// Timestamp is seconds since the start of the run or session.
	Timestamp float64 `json:"timestamp_seconds"`

	// Confidence and Nervousness are percentages in [0,100] that sum
	// to 100 within rounding.
	Confidence  float64 `json:"confidence_percentage"`
	Nervousness float64 `json:"nervousness_percentage"`

	// Dominant is the label with the highest probability.
	Dominant emotion.Label `json:"dominant_emotion"`

	// Emotions is the raw classifier output for this frame.
	Emotions emotion.Vector `json:"emotions"`
}

// New scores an emotion vector into a sample at the given timestamp.
func New(timestamp float64, v emotion.Vector) Sample {
	conf, nerv := score.Score(v)
	return Sample{
		Timestamp:   timestamp,
		Confidence:  conf,
		Nervousness: nerv,
		Dominant:    v.Dominant(),
		Emotions:    v,
	}
}

// NeutralFallback returns the synthetic sample substituted when
// classification fails in batch mode: 50/50 with a pure neutral vector.
// It keeps the table's time axis contiguous.
func NeutralFallback(timestamp float64) Sample {
	return Sample{
		Timestamp:   timestamp,
		Confidence:  50.0,
		Nervousness: 50.0,
		Dominant:    emotion.Neutral,
		Emotions:    emotion.NeutralVector(),
	}
}
