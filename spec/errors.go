package spec

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrNotInitialized       = errors.New("no driver registered")
	ErrEngineNotFound       = errors.New("engine handle is invalid or destroyed")
	ErrConversationNotFound = errors.New("conversation handle is invalid or destroyed")
)

// ModelLoadError reports a failure during engine creation: asset resolution,
// configuration, or driver instantiation.
type ModelLoadError struct {
	Path string
	Err  error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("failed to load model %q: %v", e.Path, e.Err)
}

func (e *ModelLoadError) Unwrap() error { return e.Err }

// GenerationError reports a failed message exchange. Stage is "send" when
// the driver itself failed and "normalize" when the driver succeeded but
// returned content in an unrecognized shape.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed during %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
