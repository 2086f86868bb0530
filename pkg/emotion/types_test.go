package emotion

import "testing"

func TestDominant(t *testing.T) {
	v := Vector{Happy: 60, Sad: 30, Neutral: 10}

	if got := v.Dominant(); got != Happy {
		t.Errorf("Expected dominant %q, got %q", Happy, got)
	}
}

func TestDominant_TieBreaksCanonicalOrder(t *testing.T) {
	// fear precedes happy in canonical order.
	v := Vector{Fear: 50, Happy: 50}

	if got := v.Dominant(); got != Fear {
		t.Errorf("Expected dominant %q on tie, got %q", Fear, got)
	}
}

func TestDominant_EmptyVector(t *testing.T) {
	v := Vector{}

	if got := v.Dominant(); got != Angry {
		t.Errorf("Expected first canonical label %q for empty vector, got %q", Angry, got)
	}
}

func TestNeutralVector(t *testing.T) {
	v := NeutralVector()

	if len(v) != len(Labels) {
		t.Errorf("Expected %d entries, got %d", len(Labels), len(v))
	}
	if v[Neutral] != 100 {
		t.Errorf("Expected neutral 100, got %v", v[Neutral])
	}
	for _, l := range Labels {
		if l != Neutral && v[l] != 0 {
			t.Errorf("Expected %q at 0, got %v", l, v[l])
		}
	}
	if v.Dominant() != Neutral {
		t.Errorf("Expected dominant neutral, got %q", v.Dominant())
	}
}

func TestClone(t *testing.T) {
	v := Vector{Happy: 70, Sad: 30}
	c := v.Clone()
	c[Happy] = 0

	if v[Happy] != 70 {
		t.Error("Mutating the clone should not affect the original")
	}
}

func TestMock_Defaults(t *testing.T) {
	m := NewMock()

	v, err := m.Classify([]byte("frame"))
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if v.Dominant() != Neutral {
		t.Errorf("Expected neutral default, got %q", v.Dominant())
	}

	if err := m.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	if m.CallCount("Classify") != 1 {
		t.Errorf("Expected 1 Classify call, got %d", m.CallCount("Classify"))
	}
	if m.CallCount("Close") != 1 {
		t.Errorf("Expected 1 Close call, got %d", m.CallCount("Close"))
	}

	calls := m.Calls()
	if len(calls) != 2 || calls[0].FrameSize != 5 {
		t.Errorf("Unexpected call record: %+v", calls)
	}
}
