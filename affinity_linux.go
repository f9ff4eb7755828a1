//go:build linux

package preemptrt

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// SetAffinity pins the given thread to the listed CPUs via
// sched_setaffinity(2). The list must name at least one CPU; the kernel
// additionally rejects sets with no online CPU as EINVAL.
func SetAffinity(tid TID, cpus []int) error {
	if len(cpus) == 0 {
		return &OpError{Op: OpSetAffinity, TID: tid, Err: ErrEmptyCPUSet}
	}

	var set unix.CPUSet
	set.Zero()
	for _, cpu := range cpus {
		if cpu < 0 {
			return &OpError{Op: OpSetAffinity, TID: tid, Err: fmt.Errorf("negative cpu index %d", cpu)}
		}
		set.Set(cpu)
	}

	if err := unix.SchedSetaffinity(int(tid), &set); err != nil {
		return &OpError{Op: OpSetAffinity, TID: tid, Err: err}
	}
	return nil
}

// GetAffinity reports the CPUs the given thread may run on via
// sched_getaffinity(2), as a sorted list of CPU indices.
func GetAffinity(tid TID) ([]int, error) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(int(tid), &set); err != nil {
		return nil, &OpError{Op: OpGetAffinity, TID: tid, Err: err}
	}

	// CPUSet's size constant is unexported; every representable index is
	// covered by walking the full bit width of the mask array.
	cpus := make([]int, 0, set.Count())
	for cpu := 0; cpu < len(set)*64; cpu++ {
		if set.IsSet(cpu) {
			cpus = append(cpus, cpu)
		}
	}
	return cpus, nil
}
