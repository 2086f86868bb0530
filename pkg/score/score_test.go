package score

import (
	"math"
	"testing"

	"github.com/affectlab/facemeter/pkg/emotion"
)

func TestScore_PureHappy(t *testing.T) {
	v := emotion.Vector{emotion.Happy: 100}

	conf, nerv := Score(v)

	if conf != 100.0 {
		t.Errorf("Expected confidence 100.0, got %v", conf)
	}
	if nerv != 0.0 {
		t.Errorf("Expected nervousness 0.0, got %v", nerv)
	}
}

func TestScore_PureFear(t *testing.T) {
	v := emotion.Vector{emotion.Fear: 100}

	conf, nerv := Score(v)

	if conf != 0.0 {
		t.Errorf("Expected confidence 0.0, got %v", conf)
	}
	if nerv != 100.0 {
		t.Errorf("Expected nervousness 100.0, got %v", nerv)
	}
}

func TestScore_AllZero(t *testing.T) {
	v := emotion.Vector{}
	for _, l := range emotion.Labels {
		v[l] = 0
	}

	conf, nerv := Score(v)

	if conf != 50.0 || nerv != 50.0 {
		t.Errorf("Expected (50.0, 50.0) for the all-zero vector, got (%v, %v)", conf, nerv)
	}
}

func TestScore_PairSumsTo100(t *testing.T) {
	cases := []emotion.Vector{
		{emotion.Happy: 40, emotion.Sad: 30, emotion.Fear: 20, emotion.Neutral: 10},
		{emotion.Angry: 50, emotion.Disgust: 25, emotion.Surprise: 25},
		{emotion.Happy: 33.3, emotion.Sad: 33.3, emotion.Neutral: 33.4},
		{emotion.Fear: 1, emotion.Happy: 99},
		{emotion.Neutral: 100},
		{emotion.Sad: 60, emotion.Surprise: 40},
	}

	for _, v := range cases {
		conf, nerv := Score(v)
		sum := conf + nerv
		if math.Abs(sum-100.0) > 0.1 {
			t.Errorf("Score(%v) = (%v, %v), pair sums to %v, want 100 +/- 0.1", v, conf, nerv, sum)
		}
	}
}

func TestScore_WeightedMix(t *testing.T) {
	// happy 50 * 0.8 = 40 raw confidence; sad 50 * (1-0.2) = 40 raw
	// nervousness. Normalizes to an even split.
	v := emotion.Vector{emotion.Happy: 50, emotion.Sad: 50}

	conf, nerv := Score(v)

	if conf != 50.0 || nerv != 50.0 {
		t.Errorf("Expected (50.0, 50.0), got (%v, %v)", conf, nerv)
	}
}

func TestScore_RoundsToOneDecimal(t *testing.T) {
	v := emotion.Vector{emotion.Happy: 33, emotion.Sad: 33, emotion.Fear: 34}

	conf, nerv := Score(v)

	for _, x := range []float64{conf, nerv} {
		if math.Abs(x*10-math.Round(x*10)) > 1e-9 {
			t.Errorf("Expected one-decimal value, got %v", x)
		}
	}
}
