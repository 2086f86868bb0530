package emotion

// Classifier is the interface for emotion classification backends.
type Classifier interface {
	// Classify analyzes the JPEG frame and returns an emotion vector.
	// When the frame contains multiple faces, the first detection is used.
	// When it contains none, a best-effort vector is returned, not an error.
	Classify(jpeg []byte) (Vector, error)

	// Close releases resources.
	Close() error
}

// Config holds classifier configuration.
type Config struct {
	FaceModelPath    string  // Path to the YuNet face detection ONNX model
	EmotionModelPath string  // Path to the emotion classification ONNX model
	ConfidenceThresh float64 // Minimum face detection confidence (default 0.5)
	InputWidth       int     // Face detector input width
	InputHeight      int     // Face detector input height
	EmotionInputSize int     // Emotion net input size (square, default 48)
}

// DefaultConfig returns production defaults for the DNN classifier.
func DefaultConfig() Config {
	return Config{
		FaceModelPath:    "models/face_detection_yunet.onnx",
		EmotionModelPath: "models/emotion_fer.onnx",
		ConfidenceThresh: 0.5,
		InputWidth:       320,
		InputHeight:      320,
		EmotionInputSize: 48,
	}
}
