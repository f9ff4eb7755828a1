package preemptrt

import (
	"strconv"
	"strings"
	"time"
)

// Bandwidth describes the kernel's global real-time throttling budget:
// real-time tasks may consume Runtime out of every Period before the
// scheduler throttles them to let non-real-time work run.
type Bandwidth struct {
	// Runtime is the real-time execution budget per Period. A negative
	// value disables throttling entirely.
	Runtime time.Duration
	// Period is the accounting period
	Period time.Duration
}

// Unlimited reports whether real-time throttling is disabled.
func (b Bandwidth) Unlimited() bool {
	return b.Runtime < 0
}

// parseBandwidthValue parses a single sched_rt_*_us sysctl value. The files
// hold a decimal microsecond count followed by a newline; -1 in the runtime
// file means unlimited.
func parseBandwidthValue(data []byte) (time.Duration, error) {
	us, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(us) * time.Microsecond, nil
}

// realtimeKernelBanner reports whether a /proc/version banner names a
// PREEMPT_RT kernel. Modern rt kernels tag uname with PREEMPT_RT, older
// patch series used a space.
func realtimeKernelBanner(banner string) bool {
	return strings.Contains(banner, "PREEMPT_RT") || strings.Contains(banner, "PREEMPT RT")
}
