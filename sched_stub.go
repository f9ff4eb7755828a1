//go:build !linux

package preemptrt

import (
	"fmt"
	"runtime"
)

// errUnsupported builds the failure every stub returns, carrying the
// platform name so callers see what they ran on.
func errUnsupported(op Operation, tid TID) error {
	return &OpError{Op: op, TID: tid, Err: fmt.Errorf("%w: %s", ErrUnsupportedPlatform, runtime.GOOS)}
}

// Gettid returns the caller's thread ID (stub - thread IDs are a Linux
// concept, so this always reports Self).
func Gettid() TID {
	return Self
}

// GetScheduler returns the scheduling policy of the given thread (stub -
// scheduler control is only supported on Linux).
func GetScheduler(tid TID) (Policy, error) {
	return PolicyOther, errUnsupported(OpGetScheduler, tid)
}

// SetScheduler applies a policy and parameters to the given thread (stub -
// scheduler control is only supported on Linux).
func SetScheduler(tid TID, policy Policy, param Param) error {
	return errUnsupported(OpSetScheduler, tid)
}

// GetParam returns the scheduling parameters of the given thread (stub -
// scheduler control is only supported on Linux).
func GetParam(tid TID) (Param, error) {
	return Param{}, errUnsupported(OpGetParam, tid)
}

// SetParam updates the scheduling parameters of the given thread (stub -
// scheduler control is only supported on Linux).
func SetParam(tid TID, param Param) error {
	return errUnsupported(OpSetParam, tid)
}

// PriorityRange returns the valid priority bounds for the policy (stub -
// scheduler control is only supported on Linux).
func (p Policy) PriorityRange() (min, max int, err error) {
	return 0, 0, errUnsupported(OpPriorityRange, Self)
}

// Apply validates and installs the request on the given thread (stub -
// scheduler control is only supported on Linux).
func (r Request) Apply(tid TID) error {
	return errUnsupported(OpSetScheduler, tid)
}

// SetNice adjusts the nice value of the given thread (stub - scheduler
// control is only supported on Linux).
func SetNice(tid TID, nice int) error {
	return errUnsupported(OpSetNice, tid)
}

// GetNice returns the nice value of the given thread (stub - scheduler
// control is only supported on Linux).
func GetNice(tid TID) (int, error) {
	return 0, errUnsupported(OpGetNice, tid)
}
