package main

import (
	"sync"
	"unsafe"
)

// maxErrBufs caps the number of per-thread buffers kept live at once.
const maxErrBufs = 1024

// errBufs hands out one foreign-heap string per thread for the last-error
// query. A buffer is reallocated only when the thread's message has changed,
// which only happens on the thread's next failing operation; a pointer
// returned earlier therefore stays valid across successful calls and repeat
// queries. The table is bounded: once full, handing a buffer to a new thread
// releases the least recently queried thread's buffer.
type errBufs struct {
	alloc func(string) unsafe.Pointer
	free  func(unsafe.Pointer)

	mu   sync.Mutex
	seq  uint64
	bufs map[uint64]*errBuf
}

type errBuf struct {
	msg string
	ptr unsafe.Pointer
	seq uint64
}

func newErrBufs(alloc func(string) unsafe.Pointer, free func(unsafe.Pointer)) *errBufs {
	return &errBufs{alloc: alloc, free: free, bufs: map[uint64]*errBuf{}}
}

// view returns the buffer holding msg for thread tid, reusing the previous
// allocation when the message is unchanged.
func (e *errBufs) view(tid uint64, msg string) unsafe.Pointer {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seq++

	if b := e.bufs[tid]; b != nil {
		if b.msg == msg {
			b.seq = e.seq
			return b.ptr
		}
		e.free(b.ptr)
		delete(e.bufs, tid)
	}

	if len(e.bufs) >= maxErrBufs {
		e.evictOldest()
	}
	b := &errBuf{msg: msg, ptr: e.alloc(msg), seq: e.seq}
	e.bufs[tid] = b
	return b.ptr
}

// evictOldest releases the buffer with the smallest sequence number. Callers
// hold mu.
func (e *errBufs) evictOldest() {
	var victim uint64
	var oldest *errBuf
	for tid, b := range e.bufs {
		if oldest == nil || b.seq < oldest.seq {
			victim, oldest = tid, b
		}
	}
	if oldest != nil {
		e.free(oldest.ptr)
		delete(e.bufs, victim)
	}
}
