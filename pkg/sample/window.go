package sample

// Window is a fixed-capacity sliding window of the most recent samples.
// Once full, each push evicts the oldest entry (pure FIFO, no weighting).
// It backs the live display only; unbounded history is kept separately.
type Window struct {
	buf   []Sample
	start int // index of the oldest entry
	n     int
}

// NewWindow creates a window holding at most capacity samples.
func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{buf: make([]Sample, capacity)}
}

// Push appends a sample, evicting the oldest once at capacity.
func (w *Window) Push(s Sample) {
	if w.n < len(w.buf) {
		w.buf[(w.start+w.n)%len(w.buf)] = s
		w.n++
		return
	}
	w.buf[w.start] = s
	w.start = (w.start + 1) % len(w.buf)
}

// Len returns the number of samples currently held.
func (w *Window) Len() int {
	return w.n
}

// Cap returns the window capacity.
func (w *Window) Cap() int {
	return len(w.buf)
}

// Snapshot returns a copy of the window contents, oldest first.
func (w *Window) Snapshot() []Sample {
	out := make([]Sample, w.n)
	for i := 0; i < w.n; i++ {
		out[i] = w.buf[(w.start+i)%len(w.buf)]
	}
	return out
}

// Reset empties the window without changing its capacity.
func (w *Window) Reset() {
	w.start = 0
	w.n = 0
}
