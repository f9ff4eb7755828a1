//go:build linux

package preemptrt

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// Files probed for kernel real-time capability.
const (
	sysRealtimeFile = "/sys/kernel/realtime"
	procVersionFile = "/proc/version"
	rtRuntimeFile   = "/proc/sys/kernel/sched_rt_runtime_us"
	rtPeriodFile    = "/proc/sys/kernel/sched_rt_period_us"
)

// KernelRealtime reports whether the running kernel carries the PREEMPT_RT
// patch. It prefers /sys/kernel/realtime, which rt kernels expose as "1",
// and falls back to scanning the /proc/version banner. A false result does
// not make real-time policies unavailable, it only weakens their latency
// guarantees.
func KernelRealtime() (bool, error) {
	data, err := os.ReadFile(sysRealtimeFile)
	if err == nil {
		return strings.TrimSpace(string(data)) == "1", nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("preemptrt: realtime probe: %w", err)
	}

	data, err = os.ReadFile(procVersionFile)
	if err != nil {
		return false, fmt.Errorf("preemptrt: realtime probe: %w", err)
	}
	return realtimeKernelBanner(string(data)), nil
}

// RTPriorityLimit returns the highest real-time priority this process may
// request without CAP_SYS_NICE, from the RLIMIT_RTPRIO soft limit. Zero
// means real-time policies need the capability.
func RTPriorityLimit() (int, error) {
	var lim unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_RTPRIO, &lim); err != nil {
		return 0, fmt.Errorf("preemptrt: rtprio limit: %w", err)
	}

	if lim.Cur == unix.RLIM_INFINITY {
		// No rlimit cap; the policy's own range is the only bound.
		_, max, err := PolicyFIFO.PriorityRange()
		if err != nil {
			return 0, fmt.Errorf("preemptrt: rtprio limit: %w", err)
		}
		return max, nil
	}
	return int(lim.Cur), nil
}

// RTBandwidth reads the kernel's global real-time throttling budget from
// the sched_rt_runtime_us and sched_rt_period_us sysctls.
func RTBandwidth() (Bandwidth, error) {
	runtime, err := readBandwidthFile(rtRuntimeFile)
	if err != nil {
		return Bandwidth{}, err
	}
	period, err := readBandwidthFile(rtPeriodFile)
	if err != nil {
		return Bandwidth{}, err
	}
	return Bandwidth{Runtime: runtime, Period: period}, nil
}

// SetRTBandwidth writes the throttling budget back to the sysctls, which
// requires root. The period is written first because the kernel rejects a
// runtime larger than the period. Writes go straight to the files; procfs
// does not allow the rename dance used for regular config files.
func SetRTBandwidth(b Bandwidth) error {
	if err := writeBandwidthFile(rtPeriodFile, b.Period); err != nil {
		return err
	}
	return writeBandwidthFile(rtRuntimeFile, b.Runtime)
}

func readBandwidthFile(path string) (time.Duration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("preemptrt: rt bandwidth: %w", err)
	}
	d, err := parseBandwidthValue(data)
	if err != nil {
		return 0, fmt.Errorf("preemptrt: rt bandwidth: parse %s: %w", path, err)
	}
	return d, nil
}

func writeBandwidthFile(path string, d time.Duration) error {
	data := []byte(strconv.FormatInt(d.Microseconds(), 10))
	if err := os.WriteFile(path, data, FileMode); err != nil {
		return fmt.Errorf("preemptrt: rt bandwidth: %w", err)
	}
	return nil
}
