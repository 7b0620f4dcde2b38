package spec

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want Status
	}{
		{"nil", nil, StatusOK},
		{"invalid argument", fmt.Errorf("%w: model path is empty", ErrInvalidArgument), StatusInvalidArgs},
		{"stale engine handle", ErrEngineNotFound, StatusInvalidArgs},
		{"stale conversation handle", ErrConversationNotFound, StatusInvalidArgs},
		{"not initialized", ErrNotInitialized, StatusNotInitialized},
		{"model load", &ModelLoadError{Path: "m.bin", Err: errors.New("missing file")}, StatusModelLoadFailed},
		{"generation send", &GenerationError{Stage: "send", Err: errors.New("decode failed")}, StatusGenerationFailed},
		{"generation normalize", &GenerationError{Stage: "normalize", Err: errors.New("bad shape")}, StatusGenerationFailed},
		{"wrapped model load", fmt.Errorf("outer: %w", &ModelLoadError{Path: "m", Err: errors.New("x")}), StatusModelLoadFailed},
		{"anything else", errors.New("boom"), StatusError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := StatusOf(tc.err); got != tc.want {
				t.Fatalf("StatusOf(%v) = %v; want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		s    Status
		want string
	}{
		{StatusOK, "ok"},
		{StatusError, "error"},
		{StatusInvalidArgs, "invalid_args"},
		{StatusNotInitialized, "not_initialized"},
		{StatusModelLoadFailed, "model_load_failed"},
		{StatusGenerationFailed, "generation_failed"},
		{Status(-99), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.s.String(); got != tc.want {
			t.Errorf("Status(%d).String() = %q; want %q", tc.s, got, tc.want)
		}
	}
}

func TestErrorUnwrapping(t *testing.T) {
	t.Parallel()

	inner := errors.New("assets missing")
	var err error = &ModelLoadError{Path: "m.litertlm", Err: inner}
	if !errors.Is(err, inner) {
		t.Fatal("ModelLoadError did not unwrap to its cause")
	}

	var genErr *GenerationError
	wrapped := fmt.Errorf("call failed: %w", &GenerationError{Stage: "send", Err: inner})
	if !errors.As(wrapped, &genErr) {
		t.Fatal("errors.As failed to find GenerationError")
	}
	if genErr.Stage != "send" {
		t.Fatalf("Stage = %q; want %q", genErr.Stage, "send")
	}
}
