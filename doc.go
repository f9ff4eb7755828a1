// Package preemptrt provides native Go bindings for Linux real-time
// scheduling without shelling out to chrt or taskset.
//
// The core functionality centers on the scheduler accessors, which read and
// write a thread's policy and priority directly through the sched_* family
// of syscalls:
//
//	policy, err := preemptrt.GetScheduler(preemptrt.Self)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Promote the calling thread to SCHED_FIFO priority 10
//	err = preemptrt.SetScheduler(preemptrt.Self, preemptrt.PolicyFIFO, preemptrt.Param{Priority: 10})
//
// Scheduling attributes are per-thread kernel state, so the Go runtime's
// habit of moving goroutines between OS threads matters here. Spawn and
// TrySpawn handle this by locking a fresh goroutine to its own OS thread,
// applying the policy there, and keeping the lock for the body's whole
// lifetime:
//
//	t := preemptrt.TrySpawn(preemptrt.PolicyFIFO, preemptrt.Param{Priority: 50}, func(setErr error) {
//	    if setErr != nil {
//	        log.Printf("running without real-time priority: %v", setErr)
//	    }
//	    runControlLoop()
//	})
//	t.Join()
//
// # Manager for Bulk Operations
//
// The Manager type is provided as a convenience for applications that need
// to retune many threads concurrently. It's particularly useful for:
//
//   - Pinning and prioritizing every thread of an audio or control process
//   - Applying a saved Profile across a process after startup
//   - Monitoring dashboards that snapshot scheduling state
//
// If your application only touches its own threads, you may not need the
// Manager. It's designed to be optional - the accessor functions provide
// all core functionality.
//
//	manager := preemptrt.NewManager(
//	    preemptrt.WithConcurrency(5),
//	)
//
//	// Apply a profile to every thread of a process
//	err = manager.ApplyProcess(ctx, profile, pid)
//
// # Design Philosophy
//
// This library prioritizes:
//
//   - Zero external process spawning (no exec of chrt/taskset/renice)
//   - Direct syscalls with errno preserved for errors.Is inspection
//   - Kernel as the source of truth (no silent clamping of priorities)
//   - Type safety (no string-based policy codes)
//
// Real-time policies require either CAP_SYS_NICE or a non-zero RLIMIT_RTPRIO
// soft limit, and deliver their latency guarantees only on PREEMPT_RT
// kernels; KernelRealtime and RTPriorityLimit report what the running system
// allows. On non-Linux platforms every operation returns
// ErrUnsupportedPlatform while the package still compiles, so portable
// programs can branch at runtime instead of build time.
package preemptrt
