//go:build linux

package preemptrt

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/alxhill/preempt-rt/internal/procfs"
)

// statPath returns the procfs stat file for a thread. Self maps to
// /proc/thread-self, which names the calling thread rather than the main
// thread of the process.
func statPath(tid TID) string {
	if tid == Self {
		return "/proc/thread-self/stat"
	}
	return fmt.Sprintf("/proc/%d/stat", tid)
}

// ReadStatus snapshots the scheduling-relevant fields of a thread from
// /proc/<tid>/stat. Unlike the sched_* calls it needs no capability, so it
// works on threads of other users too.
func ReadStatus(tid TID) (Status, error) {
	data, err := os.ReadFile(statPath(tid))
	if err != nil {
		return Status{}, &OpError{Op: OpReadStatus, TID: tid, Err: err}
	}

	st, err := procfs.ParseStat(data)
	if err != nil {
		return Status{}, &OpError{Op: OpReadStatus, TID: tid, Err: fmt.Errorf("%w: %v", ErrStatDecode, err)}
	}

	policy, err := PolicyFromValue(st.Policy)
	if err != nil {
		return Status{}, &OpError{Op: OpReadStatus, TID: tid, Err: err}
	}

	return Status{
		TID:         TID(st.PID),
		Comm:        st.Comm,
		State:       st.State,
		Policy:      policy,
		RTPriority:  st.RTPriority,
		Nice:        st.Nice,
		NumThreads:  st.NumThreads,
		Processor:   st.Processor,
		RawPriority: st.Priority,
	}, nil
}

// ProcessThreads lists the thread IDs of a process from /proc/<pid>/task in
// ascending order. Pass os.Getpid to enumerate the current process.
func ProcessThreads(pid int) ([]TID, error) {
	entries, err := os.ReadDir(fmt.Sprintf("/proc/%d/task", pid))
	if err != nil {
		return nil, fmt.Errorf("preemptrt: process threads %d: %w", pid, err)
	}

	tids := make([]TID, 0, len(entries))
	for _, e := range entries {
		// task entries are always numeric, skip anything unexpected
		n, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		tids = append(tids, TID(n))
	}
	sort.Slice(tids, func(i, j int) bool { return tids[i] < tids[j] })

	return tids, nil
}
