//go:build !linux

package preemptrt

import (
	"fmt"
	"runtime"
)

func errKernelProbe(what string) error {
	return fmt.Errorf("preemptrt: %s: %w: %s", what, ErrUnsupportedPlatform, runtime.GOOS)
}

// KernelRealtime reports whether the kernel carries the PREEMPT_RT patch
// (stub - kernel probing is only supported on Linux).
func KernelRealtime() (bool, error) {
	return false, errKernelProbe("realtime probe")
}

// RTPriorityLimit returns the RLIMIT_RTPRIO soft limit (stub - kernel
// probing is only supported on Linux).
func RTPriorityLimit() (int, error) {
	return 0, errKernelProbe("rtprio limit")
}

// RTBandwidth reads the real-time throttling budget (stub - kernel probing
// is only supported on Linux).
func RTBandwidth() (Bandwidth, error) {
	return Bandwidth{}, errKernelProbe("rt bandwidth")
}

// SetRTBandwidth writes the real-time throttling budget (stub - kernel
// probing is only supported on Linux).
func SetRTBandwidth(b Bandwidth) error {
	return errKernelProbe("rt bandwidth")
}
