// Package batch extracts scored samples from a finite video file at a
// fixed one-second cadence.
package batch

import (
	"context"
	"errors"

	"github.com/affectlab/facemeter/internal/log"
	"github.com/affectlab/facemeter/pkg/emotion"
	"github.com/affectlab/facemeter/pkg/sample"
)

// Sentinel errors for common error conditions.
var (
	// ErrSourceUnavailable is returned when a video file cannot be opened.
	ErrSourceUnavailable = errors.New("batch: cannot open video source")

	// ErrFrameRead is returned when a frame cannot be read mid-run.
	ErrFrameRead = errors.New("batch: frame read failed")

	// ErrNoSamples is returned when a run produced no samples at all.
	ErrNoSamples = errors.New("batch: no frames could be analyzed")
)

// VideoSource provides fixed-interval access to a finite, seekable video.
type VideoSource interface {
	// Info returns the native frame rate and total frame count.
	Info() (fps float64, frameCount int)

	// ReadAt seeks to the frame nearest the given second and returns it
	// as JPEG bytes.
	ReadAt(second int) ([]byte, error)

	// Close releases the source.
	Close() error
}

// Sampler iterates a video at one-second intervals, classifies each
// frame, and accumulates one scored sample per interval.
type Sampler struct {
	classifier emotion.Classifier
}

// New creates a batch sampler using the given classifier.
func New(classifier emotion.Classifier) *Sampler {
	return &Sampler{classifier: classifier}
}

// Extract walks the video at 1 Hz and returns the accumulated table.
//
// A frame read failure ends the loop early and the partial table is
// returned; it is not an error at this level. A classification failure
// for a single frame substitutes a neutral fallback sample so the time
// axis stays contiguous, and never surfaces to the caller.
func (s *Sampler) Extract(ctx context.Context, src VideoSource) *sample.Table {
	fps, frames := src.Info()
	duration := float64(frames) / fps

	log.Info("starting video extraction",
		"fps", fps, "frames", frames, "duration_seconds", duration)

	table := sample.NewTable()
	for t := 0; float64(t) < duration; t++ {
		select {
		case <-ctx.Done():
			return table
		default:
		}

		frame, err := src.ReadAt(t)
		if err != nil {
			// End of stream or a broken container. Keep what we have.
			log.Warn("frame read failed, stopping extraction", "second", t, "error", err)
			break
		}

		v, err := s.classifier.Classify(frame)
		if err != nil {
			log.Warn("classification failed, substituting neutral sample", "second", t, "error", err)
			table.Append(sample.NeutralFallback(float64(t)))
			continue
		}

		smp := sample.New(float64(t), v)
		table.Append(smp)
		log.Debug("frame scored",
			"second", t, "confidence", smp.Confidence, "nervousness", smp.Nervousness)
	}

	log.Info("extraction complete", "samples", table.Len())
	return table
}
