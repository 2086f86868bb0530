// Package config provides configuration helpers for facemeter commands.
package config

import (
	"os"
	"strconv"
)

// Defaults used when the corresponding environment variable is unset.
const (
	DefaultCameraIndex = 0
	DefaultModelDir    = "models"
	DefaultOutputDir   = "."
)

// CameraIndex returns the camera device index from CAMERA_INDEX.
// Falls back to DefaultCameraIndex if not set or not a number.
func CameraIndex() int {
	if v := os.Getenv("CAMERA_INDEX"); v != "" {
		if idx, err := strconv.Atoi(v); err == nil && idx >= 0 {
			return idx
		}
	}
	return DefaultCameraIndex
}

// ModelDir returns the directory holding the ONNX models from MODEL_DIR.
func ModelDir() string {
	if dir := os.Getenv("MODEL_DIR"); dir != "" {
		return dir
	}
	return DefaultModelDir
}

// OutputDir returns the directory for CSV and report exports from OUTPUT_DIR.
func OutputDir() string {
	if dir := os.Getenv("OUTPUT_DIR"); dir != "" {
		return dir
	}
	return DefaultOutputDir
}

// ClassifierURL returns the URL of a remote emotion classification service
// from CLASSIFIER_URL. Empty means classify locally with the bundled models.
func ClassifierURL() string {
	return os.Getenv("CLASSIFIER_URL")
}
