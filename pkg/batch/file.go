package batch

import (
	"fmt"

	"gocv.io/x/gocv"
)

// SupportedFormats lists the container extensions the file source accepts.
var SupportedFormats = []string{".mp4", ".avi", ".mov", ".mkv", ".wmv", ".flv", ".webm"}

// FileSource reads a finite video file through OpenCV.
type FileSource struct {
	cap    *gocv.VideoCapture
	fps    float64
	frames int
}

// OpenFile opens the video at path and reads its properties.
func OpenFile(path string) (*FileSource, error) {
	cap, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("%w: %s", ErrSourceUnavailable, path)
	}

	fps := cap.Get(gocv.VideoCaptureFPS)
	frames := int(cap.Get(gocv.VideoCaptureFrameCount))
	if fps <= 0 || frames <= 0 {
		cap.Close()
		return nil, fmt.Errorf("%w: %s reports fps=%v frames=%v", ErrSourceUnavailable, path, fps, frames)
	}

	return &FileSource{cap: cap, fps: fps, frames: frames}, nil
}

// Info returns the native frame rate and total frame count.
func (s *FileSource) Info() (float64, int) {
	return s.fps, s.frames
}

// ReadAt seeks to the frame nearest the given second and returns it as
// JPEG bytes.
func (s *FileSource) ReadAt(second int) ([]byte, error) {
	s.cap.Set(gocv.VideoCapturePosFrames, float64(second)*s.fps)

	img := gocv.NewMat()
	defer img.Close()
	if ok := s.cap.Read(&img); !ok || img.Empty() {
		return nil, fmt.Errorf("%w: second %d", ErrFrameRead, second)
	}

	buf, err := gocv.IMEncode(".jpg", img)
	if err != nil {
		return nil, fmt.Errorf("%w: encode second %d: %v", ErrFrameRead, second, err)
	}
	defer buf.Close()

	jpeg := make([]byte, buf.Len())
	copy(jpeg, buf.GetBytes())
	return jpeg, nil
}

// Close releases the underlying capture.
func (s *FileSource) Close() error {
	return s.cap.Close()
}
