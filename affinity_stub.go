//go:build !linux

package preemptrt

// SetAffinity pins the given thread to the listed CPUs (stub - CPU affinity
// control is only supported on Linux).
func SetAffinity(tid TID, cpus []int) error {
	if len(cpus) == 0 {
		return &OpError{Op: OpSetAffinity, TID: tid, Err: ErrEmptyCPUSet}
	}
	return errUnsupported(OpSetAffinity, tid)
}

// GetAffinity reports the CPUs the given thread may run on (stub - CPU
// affinity control is only supported on Linux).
func GetAffinity(tid TID) ([]int, error) {
	return nil, errUnsupported(OpGetAffinity, tid)
}
