package preemptrt

// Status is a point-in-time snapshot of a thread's scheduling state as
// reported by /proc/<tid>/stat. It is read-only: changing fields here has
// no effect on the thread.
type Status struct {
	// TID is the kernel thread ID the snapshot describes
	TID TID
	// Comm is the thread name (truncated by the kernel to 15 bytes)
	Comm string
	// State is the single-letter run state, 'R' running, 'S' sleeping,
	// 'D' uninterruptible, and so on per proc(5)
	State byte
	// Policy is the scheduling policy
	Policy Policy
	// RTPriority is the real-time priority, 0 for non-real-time policies
	RTPriority int
	// Nice is the nice value, meaningful for non-real-time policies
	Nice int
	// NumThreads is the thread count of the owning process
	NumThreads int
	// Processor is the CPU the thread last ran on
	Processor int
	// RawPriority is the kernel's internal priority field. Real-time
	// threads report -(RTPriority)-1 here, everything else 20+Nice.
	RawPriority int
}

// Realtime reports whether the snapshot shows a real-time policy.
func (s Status) Realtime() bool {
	return s.Policy.Realtime()
}
