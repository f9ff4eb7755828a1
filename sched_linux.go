//go:build linux

package preemptrt

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// schedParam mirrors the kernel's struct sched_param. x/sys/unix ships no
// wrappers for the sched_* policy and parameter syscalls, so every call
// here goes through unix.Syscall with a pointer to this.
type schedParam struct {
	priority int32
}

// Gettid returns the caller's kernel thread ID. The value only stays
// meaningful for scheduler calls while the goroutine is locked to its OS
// thread with runtime.LockOSThread; an unlocked goroutine may be migrated
// to a different thread at any preemption point.
func Gettid() TID {
	return TID(unix.Gettid())
}

// GetScheduler returns the scheduling policy of the given thread via
// sched_getscheduler(2). The kernel reports the reset-on-fork bit alongside
// the policy; it is masked off here.
func GetScheduler(tid TID) (Policy, error) {
	r1, _, errno := unix.Syscall(unix.SYS_SCHED_GETSCHEDULER, uintptr(tid), 0, 0)
	if errno != 0 {
		return PolicyOther, &OpError{Op: OpGetScheduler, TID: tid, Err: errno}
	}

	policy, err := PolicyFromValue(int(r1) &^ unix.SCHED_RESET_ON_FORK)
	if err != nil {
		return PolicyOther, &OpError{Op: OpGetScheduler, TID: tid, Err: err}
	}
	return policy, nil
}

// SetScheduler applies a policy and parameters to the given thread via
// sched_setscheduler(2). The kernel is the single source of truth: no
// validation or clamping happens here beyond rejecting PolicyDeadline,
// which sched_setscheduler(2) cannot install (see ErrDeadlineUnsupported).
// Out-of-range priorities come back as EINVAL; use Request.Apply for
// pre-validated, typed range errors.
//
// Real-time policies require CAP_SYS_NICE or an RLIMIT_RTPRIO at or above
// the requested priority, and behave as documented only on PREEMPT_RT (or
// sufficiently modern mainline) kernels.
func SetScheduler(tid TID, policy Policy, param Param) error {
	if policy == PolicyDeadline {
		return &OpError{Op: OpSetScheduler, TID: tid, Err: ErrDeadlineUnsupported}
	}

	sp := schedParam{priority: int32(param.Priority)}
	_, _, errno := unix.Syscall(unix.SYS_SCHED_SETSCHEDULER, uintptr(tid), uintptr(policy), uintptr(unsafe.Pointer(&sp)))
	if errno != 0 {
		return &OpError{Op: OpSetScheduler, TID: tid, Err: errno}
	}
	return nil
}

// GetParam returns the scheduling parameters of the given thread via
// sched_getparam(2).
func GetParam(tid TID) (Param, error) {
	var sp schedParam
	_, _, errno := unix.Syscall(unix.SYS_SCHED_GETPARAM, uintptr(tid), uintptr(unsafe.Pointer(&sp)), 0)
	if errno != 0 {
		return Param{}, &OpError{Op: OpGetParam, TID: tid, Err: errno}
	}
	return Param{Priority: int(sp.priority)}, nil
}

// SetParam updates the scheduling parameters of the given thread without
// changing its policy, via sched_setparam(2). A priority other than 0
// requires the thread to already be on a real-time policy.
func SetParam(tid TID, param Param) error {
	sp := schedParam{priority: int32(param.Priority)}
	_, _, errno := unix.Syscall(unix.SYS_SCHED_SETPARAM, uintptr(tid), uintptr(unsafe.Pointer(&sp)), 0)
	if errno != 0 {
		return &OpError{Op: OpSetParam, TID: tid, Err: errno}
	}
	return nil
}

// PriorityRange returns the valid priority bounds for the policy as reported
// by sched_get_priority_min(2) and sched_get_priority_max(2). On Linux the
// real-time policies report 1..99 and all others report 0..0.
func (p Policy) PriorityRange() (min, max int, err error) {
	r1, _, errno := unix.Syscall(unix.SYS_SCHED_GET_PRIORITY_MIN, uintptr(p), 0, 0)
	if errno != 0 {
		return 0, 0, &OpError{Op: OpPriorityRange, TID: Self, Err: errno}
	}
	min = int(r1)

	r1, _, errno = unix.Syscall(unix.SYS_SCHED_GET_PRIORITY_MAX, uintptr(p), 0, 0)
	if errno != 0 {
		return 0, 0, &OpError{Op: OpPriorityRange, TID: Self, Err: errno}
	}
	max = int(r1)

	return min, max, nil
}

// Apply validates the request's priority against the kernel-reported range
// for its policy and then installs it on the given thread. Unlike the bare
// SetScheduler, an out-of-range priority fails with ErrPriorityAboveMax or
// ErrPriorityBelowMin before any state is touched; priorities are never
// clamped.
func (r Request) Apply(tid TID) error {
	if r.Policy == PolicyDeadline {
		return &OpError{Op: OpSetScheduler, TID: tid, Err: ErrDeadlineUnsupported}
	}
	if !r.Policy.Valid() {
		return &OpError{Op: OpSetScheduler, TID: tid, Err: fmt.Errorf("%w: value %d", ErrUnknownPolicy, int(r.Policy))}
	}

	min, max, err := r.Policy.PriorityRange()
	if err != nil {
		return err
	}
	if r.Param.Priority > max {
		return &OpError{
			Op:  OpSetScheduler,
			TID: tid,
			Err: fmt.Errorf("%w: %d > %d for %s", ErrPriorityAboveMax, r.Param.Priority, max, r.Policy),
		}
	}
	if r.Param.Priority < min {
		return &OpError{
			Op:  OpSetScheduler,
			TID: tid,
			Err: fmt.Errorf("%w: %d < %d for %s", ErrPriorityBelowMin, r.Param.Priority, min, r.Policy),
		}
	}

	policy := int(r.Policy)
	if r.ResetOnFork {
		policy |= unix.SCHED_RESET_ON_FORK
	}

	sp := schedParam{priority: int32(r.Param.Priority)}
	_, _, errno := unix.Syscall(unix.SYS_SCHED_SETSCHEDULER, uintptr(tid), uintptr(policy), uintptr(unsafe.Pointer(&sp)))
	if errno != 0 {
		return &OpError{Op: OpSetScheduler, TID: tid, Err: errno}
	}
	return nil
}

// SetNice adjusts the nice value of the given thread via setpriority(2).
// Unprivileged processes may raise nice freely; lowering it is governed by
// RLIMIT_NICE.
func SetNice(tid TID, nice int) error {
	if nice < NiceMin || nice > NiceMax {
		return &OpError{
			Op:  OpSetNice,
			TID: tid,
			Err: fmt.Errorf("%w: %d not in %d..%d", ErrNiceRange, nice, NiceMin, NiceMax),
		}
	}
	if err := unix.Setpriority(unix.PRIO_PROCESS, int(tid), nice); err != nil {
		return &OpError{Op: OpSetNice, TID: tid, Err: err}
	}
	return nil
}

// GetNice returns the nice value of the given thread. The raw getpriority(2)
// syscall reports nice value n as 20-n to keep its return non-negative;
// this translates back to the conventional -20..19 range.
func GetNice(tid TID) (int, error) {
	prio, err := unix.Getpriority(unix.PRIO_PROCESS, int(tid))
	if err != nil {
		return 0, &OpError{Op: OpGetNice, TID: tid, Err: err}
	}
	return 20 - prio, nil
}
