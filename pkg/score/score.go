// Package score derives confidence and nervousness percentages from an
// emotion probability vector.
//
// Positive emotions (happy, neutral, surprise) contribute to confidence
// weighted by how strongly they signal composure; negative emotions (fear,
// sad, angry, disgust) contribute to nervousness weighted by the inverse.
// The two raw scores are normalized into percentages that sum to 100.
package score

import (
	"math"

	"github.com/affectlab/facemeter/pkg/emotion"
)

// Weights maps each label to its confidence weight.
// Labels absent from the table use DefaultWeight.
var Weights = map[emotion.Label]float64{
	emotion.Happy:    0.8,
	emotion.Neutral:  0.6,
	emotion.Surprise: 0.5,
	emotion.Angry:    0.3,
	emotion.Disgust:  0.2,
	emotion.Fear:     0.1,
	emotion.Sad:      0.2,
}

// DefaultWeight is used for labels missing from the weight table.
const DefaultWeight = 0.5

// Label partitions for the two derived signals.
var (
	positive = []emotion.Label{emotion.Happy, emotion.Neutral, emotion.Surprise}
	negative = []emotion.Label{emotion.Fear, emotion.Sad, emotion.Angry, emotion.Disgust}
)

// Score maps an emotion vector to a (confidence, nervousness) pair of
// percentages. For any vector with a non-zero weighted total the pair sums
// to 100 within 0.1 (one-decimal rounding is applied to each side
// independently). The all-zero vector yields exactly (50, 50).
// Normalization is applied once; normalizing already-normalized scores
// is idempotent, so one pass is sufficient.
func Score(v emotion.Vector) (confidence, nervousness float64) {
	rawConf := 0.0
	for _, l := range positive {
		rawConf += v[l] * weight(l)
	}

	rawNerv := 0.0
	for _, l := range negative {
		rawNerv += v[l] * (1 - weight(l))
	}

	total := rawConf + rawNerv
	if total <= 0 {
		return 50.0, 50.0
	}

	return round1(rawConf / total * 100), round1(rawNerv / total * 100)
}

func weight(l emotion.Label) float64 {
	if w, ok := Weights[l]; ok {
		return w
	}
	return DefaultWeight
}

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
