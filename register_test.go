package lmbridge_test

import (
	"context"
	"errors"
	"slices"
	"testing"

	lmbridge "github.com/lmbridge/lmbridge-go"
	"github.com/lmbridge/lmbridge-go/drivertest"
	"github.com/lmbridge/lmbridge-go/spec"
)

// Two drivers are registered up front so the "sole registered driver"
// fallback never applies within this package's tests.
func init() {
	lmbridge.Register("fake-a", &drivertest.Driver{})
	lmbridge.Register("fake-b", &drivertest.Driver{})
}

func TestRegisterDuplicatePanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("duplicate Register did not panic")
		}
	}()
	lmbridge.Register("fake-a", &drivertest.Driver{})
}

func TestRegisterNilPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("Register(nil) did not panic")
		}
	}()
	lmbridge.Register("fake-nil", nil)
}

func TestDrivers(t *testing.T) {
	t.Parallel()

	names := lmbridge.Drivers()
	if !slices.IsSorted(names) {
		t.Fatalf("Drivers() = %v; want sorted", names)
	}
	if !slices.Contains(names, "fake-a") || !slices.Contains(names, "fake-b") {
		t.Fatalf("Drivers() = %v; missing registered fakes", names)
	}
}

func TestNew_DriverSelection(t *testing.T) {
	t.Parallel()

	// By name.
	b, err := lmbridge.New(lmbridge.WithDriverName("fake-a"), lmbridge.WithLogger(quietLogger()))
	if err != nil || b == nil {
		t.Fatalf("New(WithDriverName) = %v, %v", b, err)
	}

	// Unknown name.
	_, err = lmbridge.New(lmbridge.WithDriverName("missing"))
	if !errors.Is(err, spec.ErrNotInitialized) {
		t.Fatalf("unknown name err = %v; want ErrNotInitialized", err)
	}

	// Ambiguous registry with no selection.
	_, err = lmbridge.New(lmbridge.WithLogger(quietLogger()))
	if !errors.Is(err, spec.ErrNotInitialized) {
		t.Fatalf("no selection err = %v; want ErrNotInitialized", err)
	}

	// Explicit instance wins over names.
	drv := &drivertest.Driver{}
	b, err = lmbridge.New(lmbridge.WithDriver(drv), lmbridge.WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New(WithDriver): %v", err)
	}
	h, err := b.CreateEngine(context.Background(), modelFile(t), spec.BackendCPU)
	if err != nil {
		t.Fatalf("CreateEngine: %v", err)
	}
	defer b.DestroyEngine(h)
	if len(drv.Engines()) != 1 {
		t.Fatal("explicit driver was not used")
	}
}

func TestNew_NilAndFailingOptions(t *testing.T) {
	t.Parallel()

	if _, err := lmbridge.New(nil, lmbridge.WithDriverName("fake-a")); err != nil {
		t.Fatalf("New with nil option: %v", err)
	}
	if _, err := lmbridge.New(lmbridge.WithDriver(nil)); err == nil {
		t.Fatal("WithDriver(nil) accepted")
	}
}
