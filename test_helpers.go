package preemptrt

import (
	"os"
	"runtime"
	"sync"
	"testing"
)

// Cached result of the real-time capability probe, so test runs spawn at
// most one probe thread.
var (
	rtCapable bool
	rtOnce    sync.Once
)

// checkRTCapable probes whether this process may install a real-time policy
// by trying one on a scratch thread. The thread is destroyed afterwards, so
// nothing leaks into the runtime's thread pool.
func checkRTCapable() bool {
	rtOnce.Do(func() {
		t := TrySpawn(PolicyFIFO, Param{Priority: 1}, func(setErr error) {
			rtCapable = setErr == nil
		})
		t.Join()
	})
	return rtCapable
}

// RequireLinux skips the test if not running on Linux.
// Use this for functionality that has no non-Linux implementation.
func RequireLinux(t *testing.T) {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("test requires Linux")
	}
}

// RequireNotShort skips the test if running in short mode.
// Use this for integration tests that take longer to run.
func RequireNotShort(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
}

// RequireRoot skips the test if not running as root.
// Use this for tests that need system-level privileges.
func RequireRoot(t *testing.T) {
	t.Helper()
	if os.Getuid() != 0 {
		t.Skip("test requires root privileges (run with sudo to enable)")
	}
}

// RequireRTCapable skips the test unless the process is allowed to install
// real-time scheduling policies. That needs CAP_SYS_NICE, root, or a
// non-zero RLIMIT_RTPRIO soft limit.
func RequireRTCapable(t *testing.T) {
	t.Helper()
	RequireLinux(t)
	if !checkRTCapable() {
		t.Skip("real-time scheduling not permitted (need root, CAP_SYS_NICE, or RLIMIT_RTPRIO > 0)")
	}
}

// CheckRTCapable reports whether real-time policies can be installed.
// This is a non-skipping version for conditional logic.
func CheckRTCapable() bool {
	return checkRTCapable()
}
