package spec

import "errors"

// Status is the integer result code reported across the C-linkage surface.
// Zero is success; failures are small negative integers, one per error
// category. Callers branch on the Status and consult the last-error
// accessor for human-readable detail.
type Status int32

const (
	StatusOK               Status = 0
	StatusError            Status = -1
	StatusInvalidArgs      Status = -2
	StatusNotInitialized   Status = -3
	StatusModelLoadFailed  Status = -4
	StatusGenerationFailed Status = -5
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusError:
		return "error"
	case StatusInvalidArgs:
		return "invalid_args"
	case StatusNotInitialized:
		return "not_initialized"
	case StatusModelLoadFailed:
		return "model_load_failed"
	case StatusGenerationFailed:
		return "generation_failed"
	default:
		return "unknown"
	}
}

// StatusOf maps an error from any boundary operation to its Status.
// Stale-handle errors map to StatusInvalidArgs: a destroyed handle is
// indistinguishable from a bad one from the caller's side.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}

	var loadErr *ModelLoadError
	var genErr *GenerationError
	switch {
	case errors.Is(err, ErrInvalidArgument),
		errors.Is(err, ErrEngineNotFound),
		errors.Is(err, ErrConversationNotFound):
		return StatusInvalidArgs
	case errors.Is(err, ErrNotInitialized):
		return StatusNotInitialized
	case errors.As(err, &loadErr):
		return StatusModelLoadFailed
	case errors.As(err, &genErr):
		return StatusGenerationFailed
	default:
		return StatusError
	}
}
