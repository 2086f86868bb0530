// Package emotion provides face emotion classification for video frames.
//
// A classifier maps a frame to a probability vector over a closed set of
// seven emotion categories. Probabilities are percentages in [0,100] that
// sum to 100. Frames with no detectable face still produce a best-effort
// vector rather than an error.
package emotion

// Label is one of the seven emotion categories.
type Label string

// The closed set of emotion categories.
const (
	Angry    Label = "angry"
	Disgust  Label = "disgust"
	Fear     Label = "fear"
	Happy    Label = "happy"
	Sad      Label = "sad"
	Surprise Label = "surprise"
	Neutral  Label = "neutral"
)

// Labels lists all categories in canonical order. This order is used
// for export columns and deterministic iteration.
var Labels = []Label{Angry, Disgust, Fear, Happy, Sad, Surprise, Neutral}

// Vector maps each emotion label to a probability percentage in [0,100].
// A well-formed vector sums to 100; this is the classifier's contract and
// is not re-validated downstream.
type Vector map[Label]float64

// Dominant returns the label with the highest probability.
// Ties are broken by canonical label order so the result is deterministic.
func (v Vector) Dominant() Label {
	best := Neutral
	bestP := -1.0
	for _, l := range Labels {
		if p := v[l]; p > bestP {
			best = l
			bestP = p
		}
	}
	return best
}

// Clone returns a copy of the vector.
// Samples hold on to their vectors, so classifiers that reuse buffers
// should hand out clones.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	for l, p := range v {
		out[l] = p
	}
	return out
}

// NeutralVector returns the degenerate vector used when no analysis is
// possible: neutral at 100, everything else at 0.
func NeutralVector() Vector {
	v := make(Vector, len(Labels))
	for _, l := range Labels {
		v[l] = 0
	}
	v[Neutral] = 100
	return v
}
