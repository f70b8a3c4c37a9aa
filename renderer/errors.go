package renderer

import "errors"

var (
	ErrSceneNotDefined    = errors.New("renderer: no scene defined")
	ErrViewportNotDefined = errors.New("renderer: no viewport defined")
	ErrInvalidFrameDims   = errors.New("renderer: frame dimensions must be positive")
	ErrInvalidSampleCount = errors.New("renderer: samples per pixel must be positive")
	ErrInvalidTraceDepth  = errors.New("renderer: max trace depth must be positive")
	ErrInvalidWorkerCount = errors.New("renderer: worker count must be positive")
	ErrInvalidTolerance   = errors.New("renderer: convergence tolerance must not be negative")
)
