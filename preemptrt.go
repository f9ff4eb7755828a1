package preemptrt

import "time"

// TID identifies a kernel thread for scheduler operations. The kernel's
// sched_* calls address threads (tasks), not processes: passing a process ID
// affects only that process's main thread.
type TID int

// Self addresses the calling thread. Note that this differs from getpid(2),
// which names the whole process; the sched_* syscalls interpret 0 as "the
// thread making this call".
const Self TID = 0

// Param carries the scheduling parameters applied alongside a policy. It
// mirrors struct sched_param, whose only field the kernel currently honors
// is the priority.
type Param struct {
	// Priority is the scheduling priority. Real-time policies accept the
	// kernel-reported range (typically 1-99, see Policy.PriorityRange);
	// PolicyOther, PolicyBatch, and PolicyIdle accept only 0.
	Priority int
}

// DeadlineParam declares the parameters SCHED_DEADLINE requires. They are
// not yet wired to sched_setattr(2); SetScheduler rejects PolicyDeadline
// with ErrDeadlineUnsupported until they are modeled.
type DeadlineParam struct {
	// Runtime is the worst-case execution budget per period
	Runtime time.Duration
	// Deadline is the relative deadline within each period
	Deadline time.Duration
	// Period is the activation period
	Period time.Duration
}

// Request pairs a policy with its parameters for validated application to a
// thread. Apply checks the priority against the kernel-reported range for
// the policy before touching the thread, so callers get typed range errors
// instead of a bare EINVAL.
type Request struct {
	// Policy is the scheduling policy to install
	Policy Policy
	// Param carries the priority for the policy
	Param Param
	// ResetOnFork, when set, makes children of this thread start back on
	// PolicyOther rather than inheriting a real-time policy
	ResetOnFork bool
}

// Nice value bounds accepted by setpriority(2).
const (
	// NiceMin is the highest-favor nice value
	NiceMin = -20
	// NiceMax is the lowest-favor nice value
	NiceMax = 19
)

// Defaults used by Manager and profile watching.
const (
	// DefaultManagerConcurrency is the default number of concurrent
	// per-thread operations a Manager performs
	DefaultManagerConcurrency = 10

	// DefaultWatchDebounce is the debounce window for profile file watching,
	// coalescing editor write bursts into a single reload
	DefaultWatchDebounce = 25 * time.Millisecond
)

// Operation represents the kind of scheduler operation that failed, for use
// in OpError.
type Operation int

const (
	// OpUnknown represents an unknown operation
	OpUnknown Operation = iota
	// OpGetScheduler is a sched_getscheduler(2) query
	OpGetScheduler
	// OpSetScheduler is a sched_setscheduler(2) request
	OpSetScheduler
	// OpGetParam is a sched_getparam(2) query
	OpGetParam
	// OpSetParam is a sched_setparam(2) request
	OpSetParam
	// OpPriorityRange is a sched_get_priority_min/max(2) query
	OpPriorityRange
	// OpGetAffinity is a sched_getaffinity(2) query
	OpGetAffinity
	// OpSetAffinity is a sched_setaffinity(2) request
	OpSetAffinity
	// OpGetNice is a getpriority(2) query
	OpGetNice
	// OpSetNice is a setpriority(2) request
	OpSetNice
	// OpReadStatus is a procfs status read
	OpReadStatus
)

// Operation string constants
const (
	opUnknownStr       = "unknown"
	opGetSchedulerStr  = "get_scheduler"
	opSetSchedulerStr  = "set_scheduler"
	opGetParamStr      = "get_param"
	opSetParamStr      = "set_param"
	opPriorityRangeStr = "priority_range"
	opGetAffinityStr   = "get_affinity"
	opSetAffinityStr   = "set_affinity"
	opGetNiceStr       = "get_nice"
	opSetNiceStr       = "set_nice"
	opReadStatusStr    = "read_status"
)

// String returns the string representation of an Operation
func (op Operation) String() string {
	switch op {
	case OpGetScheduler:
		return opGetSchedulerStr
	case OpSetScheduler:
		return opSetSchedulerStr
	case OpGetParam:
		return opGetParamStr
	case OpSetParam:
		return opSetParamStr
	case OpPriorityRange:
		return opPriorityRangeStr
	case OpGetAffinity:
		return opGetAffinityStr
	case OpSetAffinity:
		return opSetAffinityStr
	case OpGetNice:
		return opGetNiceStr
	case OpSetNice:
		return opSetNiceStr
	case OpReadStatus:
		return opReadStatusStr
	default:
		return opUnknownStr
	}
}
