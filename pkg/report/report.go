// Package report renders aggregated analysis results into a structured
// report record and flat exports.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/affectlab/facemeter/pkg/emotion"
	"github.com/affectlab/facemeter/pkg/sample"
	"github.com/affectlab/facemeter/pkg/stats"
)

// Report bundles everything a consumer needs to present one analysis:
// the statistical summary, the per-label breakdown, and a short
// qualitative narrative derived from fixed thresholds.
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`

	// Source describes where the samples came from (file path or
	// camera identifier).
	Source string `json:"source"`

	FrameCount int           `json:"frame_count"`
	Summary    stats.Summary `json:"summary"`

	Breakdown map[emotion.Label]stats.LabelStats `json:"breakdown"`

	// Coarse levels: High / Medium / Low.
	ConfidenceLevel  string `json:"confidence_level"`
	NervousnessLevel string `json:"nervousness_level"`

	// Narrative sentences for the key-insights section.
	ConfidenceNarrative  string `json:"confidence_narrative"`
	NervousnessNarrative string `json:"nervousness_narrative"`
	StabilityNarrative   string `json:"stability_narrative"`
}

// Build assembles a report from a sample sequence and its summary.
func Build(source string, samples []sample.Sample, sum stats.Summary) Report {
	return Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now(),
		Source:      source,
		FrameCount:  len(samples),
		Summary:     sum,
		Breakdown:   stats.Breakdown(samples),

		ConfidenceLevel:  level(sum.ConfidenceMedian),
		NervousnessLevel: level(sum.NervousnessMedian),

		ConfidenceNarrative:  confidenceNarrative(sum.ConfidenceMedian),
		NervousnessNarrative: nervousnessNarrative(sum.NervousnessMedian),
		StabilityNarrative:   stabilityNarrative(sum.ConfidenceStd),
	}
}

// level maps a median percentage to a coarse High/Medium/Low bucket.
func level(median float64) string {
	switch {
	case median > 60:
		return "High"
	case median > 40:
		return "Medium"
	default:
		return "Low"
	}
}

func confidenceNarrative(median float64) string {
	switch {
	case median > 70:
		return "consistently high confidence levels"
	case median > 50:
		return "moderate to high confidence levels"
	case median > 30:
		return "moderate confidence with some uncertainty"
	default:
		return "lower confidence levels"
	}
}

func nervousnessNarrative(median float64) string {
	switch {
	case median > 60:
		return "notably high"
	case median > 40:
		return "moderately elevated"
	default:
		return "relatively low"
	}
}

func stabilityNarrative(confidenceStd float64) string {
	switch {
	case confidenceStd > 20:
		return "high emotional variability"
	case confidenceStd > 10:
		return "moderate emotional consistency"
	default:
		return "stable emotional state"
	}
}
