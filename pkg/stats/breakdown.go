package stats

import (
	"github.com/affectlab/facemeter/pkg/emotion"
	"github.com/affectlab/facemeter/pkg/sample"
)

// LabelStats holds the per-label aggregate over a sequence of samples.
type LabelStats struct {
	Mean float64 `json:"mean"`
	Peak float64 `json:"peak"`
}

// Breakdown computes the mean and peak probability of every emotion label
// across the samples. An empty input yields all zeros.
func Breakdown(samples []sample.Sample) map[emotion.Label]LabelStats {
	out := make(map[emotion.Label]LabelStats, len(emotion.Labels))
	if len(samples) == 0 {
		for _, l := range emotion.Labels {
			out[l] = LabelStats{}
		}
		return out
	}

	for _, l := range emotion.Labels {
		sum := 0.0
		peak := 0.0
		for _, s := range samples {
			p := s.Emotions[l]
			sum += p
			if p > peak {
				peak = p
			}
		}
		out[l] = LabelStats{
			Mean: sum / float64(len(samples)),
			Peak: peak,
		}
	}
	return out
}
