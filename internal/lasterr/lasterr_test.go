package lasterr

import (
	"runtime"
	"testing"
)

func TestSetOverwrites(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	Set("first failure")
	Set("second failure")
	if got := Get(); got != "second failure" {
		t.Fatalf("Get = %q; want %q", got, "second failure")
	}
}

func TestStaleAfterSuccess(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	// Successful operations never call Set; the message is simply left in
	// place. Callers must branch on return codes, not on this string.
	Set("old failure")
	if got := Get(); got != "old failure" {
		t.Fatalf("Get = %q; want %q", got, "old failure")
	}
}

func TestStoreBounded(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	mu.Lock()
	saved := msgs
	msgs = map[uint64]entry{}
	// Synthetic thread ids well clear of real ones.
	for i := uint64(0); i < maxThreads; i++ {
		seq++
		msgs[1<<40+i] = entry{msg: "departed thread failure", seq: seq}
	}
	mu.Unlock()
	defer func() {
		mu.Lock()
		msgs = saved
		mu.Unlock()
	}()

	Set("live thread failure")

	mu.Lock()
	n := len(msgs)
	_, oldestKept := msgs[1<<40]
	mu.Unlock()

	if n != maxThreads {
		t.Fatalf("store holds %d entries; want %d", n, maxThreads)
	}
	if oldestKept {
		t.Fatal("least recently touched entry survived eviction")
	}
	if got := Get(); got != "live thread failure" {
		t.Fatalf("Get = %q; want %q", got, "live thread failure")
	}
}
