// Package lasterr stores the most recent failure message per calling OS
// thread. It exists as a compatibility shim for foreign callers that expect
// a no-argument "what went wrong" query next to integer status codes; Go
// callers should rely on returned errors instead.
//
// Messages are overwritten on every failure and left stale after a success.
// Reads are only meaningful from the thread that observed the failure, which
// holds for C-linkage callers (each call runs on the caller's thread) and
// for Go callers pinned with runtime.LockOSThread.
//
// The store is bounded: hosts that churn through OS threads do not grow it
// without limit. Once maxThreads distinct threads have entries, recording a
// message on a new thread drops the least recently touched entry.
package lasterr

import "sync"

// maxThreads caps the number of per-thread slots kept live at once.
const maxThreads = 1024

type entry struct {
	msg string
	seq uint64
}

var (
	mu   sync.Mutex
	seq  uint64
	msgs = map[uint64]entry{}
)

// Set records msg as the calling thread's last error.
func Set(msg string) {
	id := threadID()
	mu.Lock()
	defer mu.Unlock()
	seq++
	if _, ok := msgs[id]; !ok && len(msgs) >= maxThreads {
		evictOldest()
	}
	msgs[id] = entry{msg: msg, seq: seq}
}

// Get returns the calling thread's last recorded error message, or "" if
// this thread has not recorded one (or its entry was evicted).
func Get() string {
	id := threadID()
	mu.Lock()
	defer mu.Unlock()
	e, ok := msgs[id]
	if ok {
		seq++
		e.seq = seq
		msgs[id] = e
	}
	return e.msg
}

// evictOldest removes the entry with the smallest sequence number. Callers
// hold mu.
func evictOldest() {
	var victim uint64
	oldest := uint64(0)
	first := true
	for id, e := range msgs {
		if first || e.seq < oldest {
			victim, oldest = id, e.seq
			first = false
		}
	}
	delete(msgs, victim)
}

// ThreadID identifies the calling OS thread for callers that keep their own
// per-thread state next to this store.
func ThreadID() uint64 {
	return threadID()
}
