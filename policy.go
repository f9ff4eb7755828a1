package preemptrt

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Policy represents a kernel scheduling policy as used with
// sched_setscheduler(2) and sched_getscheduler(2). The numeric values are the
// kernel's own SCHED_* values, so a Policy can be compared directly against
// the policy field reported by procfs. See sched(7) for the behavioral
// differences between policies.
type Policy int

const (
	// PolicyOther is the default time-sharing scheduler, known to the kernel
	// as SCHED_NORMAL and to POSIX as SCHED_OTHER. The only valid priority
	// is 0.
	PolicyOther Policy = 0

	// PolicyFIFO is the real-time first-in-first-out scheduler. FIFO threads
	// run at priorities above all non-real-time threads and are only
	// preempted by higher-priority real-time threads.
	PolicyFIFO Policy = 1

	// PolicyRR is the real-time round-robin scheduler: SCHED_FIFO with a
	// time quantum shared among threads of equal priority.
	PolicyRR Policy = 2

	// PolicyBatch is SCHED_OTHER for CPU-intensive batch work; the kernel
	// applies a mild wakeup penalty. The only valid priority is 0.
	PolicyBatch Policy = 3

	// PolicyIdle schedules the thread only when a CPU would otherwise be
	// idle. Idle threads have no progress guarantees.
	PolicyIdle Policy = 5

	// PolicyDeadline is the earliest-deadline-first scheduler. It cannot be
	// installed through SetScheduler because it requires runtime, deadline,
	// and period parameters that sched_setscheduler(2) does not carry; see
	// ErrDeadlineUnsupported.
	PolicyDeadline Policy = 6
)

// Policy string constants
const (
	policyOtherStr    = "other"
	policyFIFOStr     = "fifo"
	policyRRStr       = "rr"
	policyBatchStr    = "batch"
	policyIdleStr     = "idle"
	policyDeadlineStr = "deadline"
	policyUnknownStr  = "unknown"
)

// String returns the lowercase name of the policy, matching the spellings
// used by chrt(1).
func (p Policy) String() string {
	switch p {
	case PolicyOther:
		return policyOtherStr
	case PolicyFIFO:
		return policyFIFOStr
	case PolicyRR:
		return policyRRStr
	case PolicyBatch:
		return policyBatchStr
	case PolicyIdle:
		return policyIdleStr
	case PolicyDeadline:
		return policyDeadlineStr
	default:
		return policyUnknownStr
	}
}

// Valid reports whether p is one of the policies known to this package.
func (p Policy) Valid() bool {
	switch p {
	case PolicyOther, PolicyFIFO, PolicyRR, PolicyBatch, PolicyIdle, PolicyDeadline:
		return true
	default:
		return false
	}
}

// Realtime reports whether p is a real-time policy. Real-time policies
// require either CAP_SYS_NICE or a sufficient RLIMIT_RTPRIO, and behave as
// documented only on PREEMPT_RT (or sufficiently modern mainline) kernels.
func (p Policy) Realtime() bool {
	switch p {
	case PolicyFIFO, PolicyRR, PolicyDeadline:
		return true
	default:
		return false
	}
}

// ParsePolicy converts a policy name (as produced by String, in any case)
// into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case policyOtherStr, "normal":
		return PolicyOther, nil
	case policyFIFOStr:
		return PolicyFIFO, nil
	case policyRRStr:
		return PolicyRR, nil
	case policyBatchStr:
		return PolicyBatch, nil
	case policyIdleStr:
		return PolicyIdle, nil
	case policyDeadlineStr:
		return PolicyDeadline, nil
	default:
		return PolicyOther, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// PolicyFromValue converts a raw kernel policy value, as returned by
// sched_getscheduler(2) or read from procfs, into a Policy.
func PolicyFromValue(v int) (Policy, error) {
	p := Policy(v)
	if !p.Valid() {
		return PolicyOther, fmt.Errorf("%w: value %d", ErrUnknownPolicy, v)
	}
	return p, nil
}

// MarshalYAML encodes the policy by name.
func (p Policy) MarshalYAML() (interface{}, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: value %d", ErrUnknownPolicy, int(p))
	}
	return p.String(), nil
}

// UnmarshalYAML decodes a policy from its name.
func (p *Policy) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParsePolicy(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
