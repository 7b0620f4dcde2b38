//go:build linux || windows || darwin

package lasterr

import (
	"runtime"
	"sync"
	"testing"
)

// Two pinned threads each recording a distinct failure must only ever
// observe their own message.
func TestThreadIsolation(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan string, 2)

	record := func(msg string) {
		defer wg.Done()
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		Set(msg)
		if got := Get(); got != msg {
			errs <- "thread observed " + got + "; want " + msg
		}
	}

	wg.Add(2)
	go record("failure on thread a")
	go record("failure on thread b")
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Error(e)
	}
}

func TestThreadIDStablePerThread(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if ThreadID() != ThreadID() {
		t.Fatal("ThreadID changed between calls on a locked thread")
	}
}
