package stream

import (
	"fmt"

	"gocv.io/x/gocv"
)

// CameraSource reads frames from a local camera device through OpenCV.
type CameraSource struct {
	cam *gocv.VideoCapture
}

// OpenCamera opens the camera at the given device index.
func OpenCamera(index int) (*CameraSource, error) {
	cam, err := gocv.OpenVideoCapture(index)
	if err != nil {
		return nil, fmt.Errorf("%w: device %d: %v", ErrSourceUnavailable, index, err)
	}
	if !cam.IsOpened() {
		cam.Close()
		return nil, fmt.Errorf("%w: device %d", ErrSourceUnavailable, index)
	}
	return &CameraSource{cam: cam}, nil
}

// Read returns the next frame as JPEG bytes.
func (s *CameraSource) Read() ([]byte, error) {
	img := gocv.NewMat()
	defer img.Close()
	if ok := s.cam.Read(&img); !ok || img.Empty() {
		return nil, ErrFrameRead
	}

	buf, err := gocv.IMEncode(".jpg", img)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrFrameRead, err)
	}
	defer buf.Close()

	jpeg := make([]byte, buf.Len())
	copy(jpeg, buf.GetBytes())
	return jpeg, nil
}

// Close releases the camera.
func (s *CameraSource) Close() error {
	return s.cam.Close()
}

// MirrorJPEG flips a JPEG frame horizontally for a mirror-style display.
// Returns the input unchanged if it cannot be decoded.
func MirrorJPEG(jpeg []byte) []byte {
	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil || img.Empty() {
		return jpeg
	}
	defer img.Close()

	gocv.Flip(img, &img, 1)

	buf, err := gocv.IMEncode(".jpg", img)
	if err != nil {
		return jpeg
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out
}
