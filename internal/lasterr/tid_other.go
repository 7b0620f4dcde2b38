//go:build !linux && !windows && !darwin

package lasterr

// Without a portable thread id, all callers share one slot. Per-thread
// isolation is only promised on platforms with a tid primitive.
func threadID() uint64 {
	return 0
}
