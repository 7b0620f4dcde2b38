//go:build darwin

package lasterr

/*
#include <pthread.h>
*/
import "C"

func threadID() uint64 {
	var tid C.uint64_t
	C.pthread_threadid_np(nil, &tid)
	return uint64(tid)
}
