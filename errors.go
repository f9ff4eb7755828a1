package preemptrt

import (
	"errors"
	"fmt"
)

// Common errors returned by scheduler operations
var (
	// ErrUnsupportedPlatform indicates the running platform has no usable
	// sched_* syscall surface. All operations return it on non-Linux builds.
	ErrUnsupportedPlatform = errors.New("preemptrt: platform not supported")

	// ErrUnknownPolicy indicates a policy value or name this package does
	// not recognize
	ErrUnknownPolicy = errors.New("preemptrt: unknown scheduling policy")

	// ErrPriorityAboveMax indicates a priority above the kernel-reported
	// maximum for the requested policy
	ErrPriorityAboveMax = errors.New("preemptrt: priority above policy maximum")

	// ErrPriorityBelowMin indicates a priority below the kernel-reported
	// minimum for the requested policy
	ErrPriorityBelowMin = errors.New("preemptrt: priority below policy minimum")

	// ErrDeadlineUnsupported indicates an attempt to install PolicyDeadline
	// through sched_setscheduler(2), which cannot carry deadline parameters;
	// sched_setattr(2) support is not yet modeled
	ErrDeadlineUnsupported = errors.New("preemptrt: deadline policy requires sched_setattr, not supported")

	// ErrNiceRange indicates a nice value outside NiceMin..NiceMax
	ErrNiceRange = errors.New("preemptrt: nice value out of range")

	// ErrEmptyCPUSet indicates an affinity request with no CPUs
	ErrEmptyCPUSet = errors.New("preemptrt: empty CPU set")

	// ErrStatDecode indicates a procfs stat file that could not be decoded
	ErrStatDecode = errors.New("preemptrt: stat decode")
)

// OpError represents a failed scheduler operation on a specific thread.
// Err preserves the kernel errno where one was involved, so callers can
// match with errors.Is against unix.EPERM, unix.EINVAL, unix.ESRCH, and
// friends.
type OpError struct {
	// Op is the operation that failed
	Op Operation
	// TID is the thread the operation addressed; Self (0) means the
	// calling thread
	TID TID
	// Err is the underlying error
	Err error
}

// Error returns a formatted error message
func (e *OpError) Error() string {
	if e.TID == Self {
		return fmt.Sprintf("preemptrt %s self: %v", e.Op.String(), e.Err)
	}
	return fmt.Sprintf("preemptrt %s tid %d: %v", e.Op.String(), int(e.TID), e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *OpError) Unwrap() error {
	return e.Err
}

// MultiError aggregates multiple errors from bulk Manager operations
type MultiError struct {
	// Errors contains all accumulated errors
	Errors []error
}

// Error returns a summary of the accumulated errors
func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors occurred", len(m.Errors))
}

// Add appends an error to the collection if it's not nil
func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// Err returns nil if no errors occurred, otherwise returns the MultiError itself
func (m *MultiError) Err() error {
	if len(m.Errors) == 0 {
		return nil
	}
	return m
}

// Unwrap exposes the accumulated errors so errors.Is and errors.As descend
// into bulk results.
func (m *MultiError) Unwrap() []error {
	return m.Errors
}
