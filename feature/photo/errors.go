package photo

import "errors"

var (
	// ErrUploadNotFound is returned when a stored photo does not exist.
	ErrUploadNotFound = errors.New("upload not found")
	// ErrAnalysisNotFound is returned when an analysis result does not exist.
	ErrAnalysisNotFound = errors.New("analysis not found")
)
