//go:build linux || windows || darwin

package lmbridge_test

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/lmbridge/lmbridge-go/drivertest"
	"github.com/lmbridge/lmbridge-go/spec"
)

// Two threads triggering distinct failures must each observe only their own
// message through the last-error accessor.
func TestLastErrorThreadIsolation(t *testing.T) {
	drv := &drivertest.Driver{}
	b := newTestBridge(t, drv)

	var wg sync.WaitGroup
	fail := func(path string) {
		defer wg.Done()
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		// Missing assets: the failure message names the path.
		_, err := b.CreateEngine(context.Background(), path, spec.BackendCPU)
		if err == nil {
			t.Error("CreateEngine succeeded; want model load failure")
			return
		}
		if got := b.LastError(); !strings.Contains(got, path) {
			t.Errorf("LastError = %q; want mention of %q", got, path)
		}
	}

	wg.Add(2)
	go fail("/nonexistent/model-alpha.litertlm")
	go fail("/nonexistent/model-beta.litertlm")
	wg.Wait()
}
