package preemptrt

import (
	"context"
	"fmt"
	"runtime"
)

// Thread is a handle to a function running on a dedicated OS thread under a
// chosen scheduling policy. Handles are created by Spawn and TrySpawn.
type Thread struct {
	tid     TID
	started chan struct{}
	done    chan struct{}
}

// TID returns the kernel thread ID of the spawned thread, blocking until
// the thread is running. The ID stays valid until the thread's function
// returns; on platforms without Linux thread IDs it is Self.
func (t *Thread) TID() TID {
	<-t.started
	return t.tid
}

// Done returns a channel that is closed once the thread's function has
// returned.
func (t *Thread) Done() <-chan struct{} {
	return t.done
}

// Join blocks until the thread's function has returned.
func (t *Thread) Join() {
	<-t.done
}

// JoinContext blocks until the thread's function has returned or the
// context is done, returning the context's error in the latter case. The
// thread itself keeps running; there is no cancellation of the body.
func (t *Thread) JoinContext(ctx context.Context) error {
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySpawn runs fn on a dedicated OS thread scheduled under policy and
// param. The new thread applies the policy to itself before calling fn and
// hands fn the outcome; fn decides whether a failure (say EPERM without
// CAP_SYS_NICE, or ErrUnsupportedPlatform off Linux) is fatal. TrySpawn
// itself never fails, making it the right entry point on kernels where
// real-time policies may be unavailable.
//
// The goroutine is locked to its OS thread for fn's whole lifetime and
// never unlocked, so the thread is destroyed when fn returns and the
// elevated policy cannot leak into the runtime's thread pool.
func TrySpawn(policy Policy, param Param, fn func(setErr error)) *Thread {
	t := &Thread{
		started: make(chan struct{}),
		done:    make(chan struct{}),
	}

	go func() {
		defer close(t.done)

		// Lock before Gettid so the reported TID is the thread fn runs on.
		runtime.LockOSThread()

		t.tid = Gettid()
		close(t.started)

		fn(Request{Policy: policy, Param: param}.Apply(Self))
	}()

	return t
}

// Spawn runs fn on a dedicated OS thread scheduled under policy and param,
// crashing the program if the policy cannot be applied. The caller has
// declared an unconditional requirement; use TrySpawn to branch on the
// failure instead.
func Spawn(policy Policy, param Param, fn func()) *Thread {
	return TrySpawn(policy, param, func(setErr error) {
		if setErr != nil {
			panic(fmt.Sprintf("preemptrt: spawn %s priority %d: %v", policy, param.Priority, setErr))
		}
		fn()
	})
}
