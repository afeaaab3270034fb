package match

import (
	"runtime"
	"sync/atomic"
)

// threadCount is the process-wide worker count. Zero means "not configured
// yet"; the first search initializes it from the logical core count. Searches
// partition their anchor rows across this many goroutines.
var threadCount atomic.Int32

// SetThreads fixes the worker count used by all subsequent searches. n == 0
// selects the number of logical cores. Calling it again reconfigures the
// count; racing initializations settle on the same observable value.
func SetThreads(n int) error {
	if n < 0 {
		return ErrInvalidThreadCount
	}
	if n == 0 {
		n = runtime.NumCPU()
		if n < 1 {
			n = 1
		}
	}
	threadCount.Store(int32(n))
	return nil
}

func workerCount() int {
	if n := threadCount.Load(); n > 0 {
		return int(n)
	}
	n := runtime.NumCPU()
	if n < 1 {
		n = 1
	}
	// Concurrent first searches all compute the same core count, so whichever
	// CAS wins the observable pool size is identical.
	threadCount.CompareAndSwap(0, int32(n))
	return int(threadCount.Load())
}
