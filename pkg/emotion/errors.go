package emotion

import "errors"

// Sentinel errors for common error conditions.
var (
	// ErrModelNotFound is returned when an ONNX model file is missing.
	ErrModelNotFound = errors.New("emotion: model file not found")

	// ErrEmptyFrame is returned when a frame cannot be decoded.
	ErrEmptyFrame = errors.New("emotion: empty or undecodable frame")

	// ErrServiceUnavailable is returned when the remote classifier
	// cannot be reached or answers with a non-OK status.
	ErrServiceUnavailable = errors.New("emotion: classification service unavailable")
)
