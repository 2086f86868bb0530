// Package stats aggregates scored samples into summary statistics.
//
// The same semantics apply whether the input comes from a batch table, a
// streaming session history, or a live window snapshot. Standard deviation
// is the sample deviation (n-1 divisor) as computed by gonum's stat.StdDev,
// which matches the default of the usual dataframe libraries. With fewer
// than two samples the deviation is reported as 0 so summaries stay finite
// and JSON-encodable.
package stats

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/affectlab/facemeter/pkg/emotion"
	"github.com/affectlab/facemeter/pkg/sample"
)

// ErrEmptyInput is returned when summarization is requested on zero
// samples. Callers are expected to guard against this.
var ErrEmptyInput = errors.New("stats: no samples to summarize")

// Summary holds the aggregate statistics for a sequence of samples.
type Summary struct {
	ConfidenceMedian float64 `json:"confidence_median"`
	ConfidenceMean   float64 `json:"confidence_mean"`
	ConfidenceStd    float64 `json:"confidence_std"`
	ConfidenceMax    float64 `json:"confidence_max"`
	ConfidenceMin    float64 `json:"confidence_min"`

	NervousnessMedian float64 `json:"nervousness_median"`
	NervousnessMean   float64 `json:"nervousness_mean"`
	NervousnessStd    float64 `json:"nervousness_std"`
	NervousnessMax    float64 `json:"nervousness_max"`
	NervousnessMin    float64 `json:"nervousness_min"`

	// TotalDuration is the largest timestamp in seconds.
	TotalDuration float64 `json:"total_duration"`

	// DominantOverall is the most frequent dominant emotion, ties broken
	// by first occurrence in table order.
	DominantOverall emotion.Label `json:"dominant_emotion_overall"`

	// SampleCount is the number of samples summarized.
	SampleCount int `json:"sample_count"`
}

// Summarize computes a Summary over the samples. The input is not
// modified. Returns ErrEmptyInput for an empty sequence.
func Summarize(samples []sample.Sample) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, ErrEmptyInput
	}

	conf := make([]float64, len(samples))
	nerv := make([]float64, len(samples))
	maxTS := 0.0
	for i, s := range samples {
		conf[i] = s.Confidence
		nerv[i] = s.Nervousness
		if s.Timestamp > maxTS {
			maxTS = s.Timestamp
		}
	}

	sum := Summary{
		ConfidenceMedian: median(conf),
		ConfidenceMean:   stat.Mean(conf, nil),
		ConfidenceStd:    stdDev(conf),
		ConfidenceMax:    maxOf(conf),
		ConfidenceMin:    minOf(conf),

		NervousnessMedian: median(nerv),
		NervousnessMean:   stat.Mean(nerv, nil),
		NervousnessStd:    stdDev(nerv),
		NervousnessMax:    maxOf(nerv),
		NervousnessMin:    minOf(nerv),

		TotalDuration:   maxTS,
		DominantOverall: dominantOverall(samples),
		SampleCount:     len(samples),
	}
	return sum, nil
}

// median returns the middle value of xs, averaging the two middle values
// for an even count.
func median(xs []float64) float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// stdDev is the sample standard deviation; 0 for fewer than two values.
func stdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func minOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

// dominantOverall picks the most frequent dominant label. Ties go to the
// label that appeared first in the sequence.
func dominantOverall(samples []sample.Sample) emotion.Label {
	counts := make(map[emotion.Label]int)
	firstSeen := make(map[emotion.Label]int)
	for i, s := range samples {
		if _, ok := firstSeen[s.Dominant]; !ok {
			firstSeen[s.Dominant] = i
		}
		counts[s.Dominant]++
	}

	best := samples[0].Dominant
	for l, c := range counts {
		switch {
		case c > counts[best]:
			best = l
		case c == counts[best] && firstSeen[l] < firstSeen[best]:
			best = l
		}
	}
	return best
}
