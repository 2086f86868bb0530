package emotion

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"
)

// outputOrder maps the emotion net's output indices to labels.
// The FER-style model emits scores in this fixed order.
var outputOrder = []Label{Angry, Disgust, Fear, Happy, Sad, Surprise, Neutral}

// DNNClassifier runs face detection and emotion classification locally
// with OpenCV. Face detection uses FaceDetectorYN (YuNet); emotion
// classification uses an FER-style ONNX net on the cropped face.
type DNNClassifier struct {
	faces  gocv.FaceDetectorYN
	net    gocv.Net
	config Config
	mu     sync.Mutex // Protects inference
}

// NewDNN creates a local DNN classifier from the configured models.
func NewDNN(cfg Config) (*DNNClassifier, error) {
	for _, path := range []string{cfg.FaceModelPath, cfg.EmotionModelPath} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
		}
	}

	faces := gocv.NewFaceDetectorYNWithParams(
		cfg.FaceModelPath,
		"", // No config file needed for ONNX
		image.Pt(cfg.InputWidth, cfg.InputHeight),
		float32(cfg.ConfidenceThresh),
		0.3,  // NMS threshold
		5000, // Top K
		int(gocv.NetBackendDefault),
		int(gocv.NetTargetCPU),
	)

	net := gocv.ReadNetFromONNX(cfg.EmotionModelPath)
	if net.Empty() {
		faces.Close()
		return nil, fmt.Errorf("%w: failed to load %s", ErrModelNotFound, cfg.EmotionModelPath)
	}
	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	return &DNNClassifier{
		faces:  faces,
		net:    net,
		config: cfg,
	}, nil
}

// Classify analyzes the JPEG frame and returns an emotion vector.
// Detection is relaxed: when no face is found the whole frame is
// classified instead, so callers always get a best-effort vector.
func (d *DNNClassifier) Classify(jpeg []byte) (Vector, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyFrame, err)
	}
	defer img.Close()

	if img.Empty() {
		return nil, ErrEmptyFrame
	}

	face := d.cropBestFace(img)
	defer face.Close()

	return d.classifyFace(face)
}

// cropBestFace detects faces and returns a Mat of the best one.
// Falls back to the full frame when nothing is detected. The returned
// Mat is always a region of img or img itself; callers close it.
func (d *DNNClassifier) cropBestFace(img gocv.Mat) gocv.Mat {
	d.faces.SetInputSize(image.Pt(img.Cols(), img.Rows()))

	out := gocv.NewMat()
	defer out.Close()
	d.faces.Detect(img, &out)

	// YuNet output format (15 columns): 0-3 bbox x,y,w,h in pixels,
	// 4-13 landmarks, 14 score. Pick the highest-scoring face.
	bestRow := -1
	bestScore := float32(0)
	for r := 0; r < out.Rows(); r++ {
		if score := out.GetFloatAt(r, 14); score > bestScore {
			bestScore = score
			bestRow = r
		}
	}
	if bestRow < 0 {
		return img.Clone()
	}

	x := int(out.GetFloatAt(bestRow, 0))
	y := int(out.GetFloatAt(bestRow, 1))
	w := int(out.GetFloatAt(bestRow, 2))
	h := int(out.GetFloatAt(bestRow, 3))

	rect := image.Rect(x, y, x+w, y+h).Intersect(image.Rect(0, 0, img.Cols(), img.Rows()))
	if rect.Empty() {
		return img.Clone()
	}
	return img.Region(rect)
}

// classifyFace runs the emotion net on a face crop.
func (d *DNNClassifier) classifyFace(face gocv.Mat) (Vector, error) {
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(face, &gray, gocv.ColorBGRToGray)

	size := image.Pt(d.config.EmotionInputSize, d.config.EmotionInputSize)
	blob := gocv.BlobFromImage(gray, 1.0/255.0, size, gocv.NewScalar(0, 0, 0, 0), false, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	out := d.net.Forward("")
	defer out.Close()

	scores, err := out.DataPtrFloat32()
	if err != nil || len(scores) < len(outputOrder) {
		return nil, fmt.Errorf("emotion: unexpected net output: %v", err)
	}

	// The net ends in softmax; rescale its distribution to percentages.
	total := float32(0)
	for i := range outputOrder {
		total += scores[i]
	}

	v := make(Vector, len(outputOrder))
	if total <= 0 {
		return NeutralVector(), nil
	}
	for i, l := range outputOrder {
		v[l] = float64(scores[i]/total) * 100
	}
	return v, nil
}

// Close releases the detector and net resources.
func (d *DNNClassifier) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.faces.Close()
	return d.net.Close()
}
