package batch

// Progress receives milestone updates and log lines during a batch run.
// Implementations must tolerate being called from the run's goroutine.
type Progress interface {
	// Update reports a milestone: a percentage in 0..100 and a short
	// status message.
	Update(percent int, message string)

	// Log reports a free-text log line.
	Log(message string)
}

// Milestone percentages emitted by Run, in order.
const (
	MilestoneExtract = 10
	MilestoneProcess = 40
	MilestoneStats   = 60
	MilestoneReport  = 80
	MilestoneSave    = 95
	MilestoneDone    = 100
)

// NopProgress discards all updates.
type NopProgress struct{}

// Update implements Progress.
func (NopProgress) Update(int, string) {}

// Log implements Progress.
func (NopProgress) Log(string) {}
