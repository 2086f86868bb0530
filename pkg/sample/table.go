package sample

// Table is an unbounded, append-only, timestamp-ordered sequence of
// samples. Samplers are the only writers; appends always happen in
// increasing timestamp order.
type Table struct {
	samples []Sample
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// Append adds a sample to the end of the table.
func (t *Table) Append(s Sample) {
	t.samples = append(t.samples, s)
}

// Len returns the number of samples.
func (t *Table) Len() int {
	return len(t.samples)
}

// At returns the sample at index i.
func (t *Table) At(i int) Sample {
	return t.samples[i]
}

// Samples returns a copy of the table contents in order.
func (t *Table) Samples() []Sample {
	out := make([]Sample, len(t.samples))
	copy(out, t.samples)
	return out
}

// Reset discards all samples.
func (t *Table) Reset() {
	t.samples = t.samples[:0]
}
