package entity

import "errors"

// Ошибки рабочего процесса.
var (
	ErrCameraAccessDenied = errors.New("camera access denied")
	ErrImageDecodeFailure = errors.New("image decode failure")
	ErrNoImageProvided    = errors.New("no image provided")
	ErrAnalyzeDisabled    = errors.New("analyze is disabled")
	ErrAnalysisFailed     = errors.New("analysis failed")
)
