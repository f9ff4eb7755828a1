//go:build !linux

package preemptrt

import (
	"fmt"
	"runtime"
)

// ReadStatus snapshots the scheduling state of a thread (stub - procfs is
// only available on Linux).
func ReadStatus(tid TID) (Status, error) {
	return Status{}, errUnsupported(OpReadStatus, tid)
}

// ProcessThreads lists the thread IDs of a process (stub - procfs is only
// available on Linux).
func ProcessThreads(pid int) ([]TID, error) {
	return nil, fmt.Errorf("preemptrt: process threads %d: %w: %s", pid, ErrUnsupportedPlatform, runtime.GOOS)
}
