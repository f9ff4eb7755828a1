package preemptrt

import (
	"errors"
	"os"
	"runtime"
	"testing"

	"golang.org/x/sys/unix"
)

// runLocked runs fn on its own locked OS thread and waits for it. The
// thread is destroyed when fn returns, so policy, nice, and affinity
// changes made inside cannot leak into the runtime's thread pool.
func runLocked(fn func(tid TID)) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		runtime.LockOSThread()
		fn(Gettid())
	}()
	<-done
}

func TestGettid(t *testing.T) {
	runLocked(func(tid TID) {
		if tid <= 0 {
			t.Errorf("Gettid() = %d, want > 0", tid)
		}
	})
}

func TestGetSchedulerSelf(t *testing.T) {
	policy, err := GetScheduler(Self)
	if err != nil {
		t.Fatalf("GetScheduler(Self) error = %v", err)
	}
	if !policy.Valid() {
		t.Errorf("GetScheduler(Self) = %v, want a valid policy", policy)
	}
}

func TestGetParamSelf(t *testing.T) {
	param, err := GetParam(Self)
	if err != nil {
		t.Fatalf("GetParam(Self) error = %v", err)
	}
	if param.Priority < 0 || param.Priority > 99 {
		t.Errorf("GetParam(Self).Priority = %d, want 0..99", param.Priority)
	}

	// Re-applying the current parameters needs no privilege.
	if err := SetParam(Self, param); err != nil {
		t.Errorf("SetParam(Self, current) error = %v", err)
	}
}

func TestPriorityRange(t *testing.T) {
	tests := []struct {
		policy  Policy
		wantMin int
		wantMax int
	}{
		{PolicyOther, 0, 0},
		{PolicyFIFO, 1, 99},
		{PolicyRR, 1, 99},
		{PolicyBatch, 0, 0},
		{PolicyIdle, 0, 0},
		{PolicyDeadline, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			min, max, err := tt.policy.PriorityRange()
			if err != nil {
				t.Fatalf("PriorityRange() error = %v", err)
			}
			if min != tt.wantMin || max != tt.wantMax {
				t.Errorf("PriorityRange() = %d..%d, want %d..%d", min, max, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestPriorityRangeInvalidPolicy(t *testing.T) {
	_, _, err := Policy(42).PriorityRange()
	if err == nil {
		t.Fatal("PriorityRange() of an invalid policy should fail")
	}
	if !errors.Is(err, unix.EINVAL) {
		t.Errorf("error = %v, want EINVAL in chain", err)
	}
}

func TestSetSchedulerDeadlineRejected(t *testing.T) {
	if err := SetScheduler(Self, PolicyDeadline, Param{}); !errors.Is(err, ErrDeadlineUnsupported) {
		t.Errorf("SetScheduler(deadline) error = %v, want ErrDeadlineUnsupported", err)
	}

	req := Request{Policy: PolicyDeadline}
	if err := req.Apply(Self); !errors.Is(err, ErrDeadlineUnsupported) {
		t.Errorf("Request.Apply(deadline) error = %v, want ErrDeadlineUnsupported", err)
	}
}

func TestRequestApplyRangeValidation(t *testing.T) {
	before, err := GetScheduler(Self)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{name: "fifo_above_max", req: Request{Policy: PolicyFIFO, Param: Param{Priority: 200}}, wantErr: ErrPriorityAboveMax},
		{name: "fifo_below_min", req: Request{Policy: PolicyFIFO, Param: Param{Priority: 0}}, wantErr: ErrPriorityBelowMin},
		{name: "rr_negative", req: Request{Policy: PolicyRR, Param: Param{Priority: -5}}, wantErr: ErrPriorityBelowMin},
		{name: "other_nonzero", req: Request{Policy: PolicyOther, Param: Param{Priority: 5}}, wantErr: ErrPriorityAboveMax},
		{name: "other_negative", req: Request{Policy: PolicyOther, Param: Param{Priority: -1}}, wantErr: ErrPriorityBelowMin},
		{name: "unknown_policy", req: Request{Policy: Policy(42)}, wantErr: ErrUnknownPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Apply(Self)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Apply() error = %v, want %v", err, tt.wantErr)
			}

			var opErr *OpError
			if !errors.As(err, &opErr) {
				t.Fatal("Apply() error should be an *OpError")
			}
			if opErr.Op != OpSetScheduler {
				t.Errorf("Op = %v, want %v", opErr.Op, OpSetScheduler)
			}
		})
	}

	// Validation failures must leave the thread untouched.
	after, err := GetScheduler(Self)
	if err != nil {
		t.Fatal(err)
	}
	if after != before {
		t.Errorf("policy changed from %v to %v by rejected requests", before, after)
	}
}

func TestSetSchedulerKernelRangeCheck(t *testing.T) {
	// Unlike Request.Apply, the bare setter does no validation of its own:
	// an out-of-range priority surfaces the kernel's EINVAL, never a typed
	// range error and never a clamped install. The kernel checks the range
	// before permissions, so this is deterministic without privileges.
	before, err := GetScheduler(Self)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		policy Policy
		prio   int
	}{
		{name: "fifo_above_max", policy: PolicyFIFO, prio: 200},
		{name: "fifo_zero", policy: PolicyFIFO, prio: 0},
		{name: "other_nonzero", policy: PolicyOther, prio: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SetScheduler(Self, tt.policy, Param{Priority: tt.prio})
			if !errors.Is(err, unix.EINVAL) {
				t.Fatalf("SetScheduler() error = %v, want EINVAL in chain", err)
			}
			if errors.Is(err, ErrPriorityAboveMax) || errors.Is(err, ErrPriorityBelowMin) {
				t.Errorf("error = %v, want the raw kernel error, not a typed range error", err)
			}

			var opErr *OpError
			if !errors.As(err, &opErr) {
				t.Fatal("SetScheduler() error should be an *OpError")
			}
			if opErr.Op != OpSetScheduler {
				t.Errorf("Op = %v, want %v", opErr.Op, OpSetScheduler)
			}
		})
	}

	after, err := GetScheduler(Self)
	if err != nil {
		t.Fatal(err)
	}
	if after != before {
		t.Errorf("policy changed from %v to %v by rejected calls", before, after)
	}
}

func TestSetSchedulerRoundTripUnprivileged(t *testing.T) {
	// Batch and idle can be entered without privileges, so the full
	// set-then-get round trip is testable on any runner. The locked thread
	// is destroyed afterwards, no restore needed.
	runLocked(func(tid TID) {
		if err := SetScheduler(Self, PolicyBatch, Param{}); err != nil {
			t.Fatalf("SetScheduler(batch) error = %v", err)
		}

		policy, err := GetScheduler(Self)
		if err != nil {
			t.Fatal(err)
		}
		if policy != PolicyBatch {
			t.Errorf("GetScheduler() = %v, want %v", policy, PolicyBatch)
		}

		param, err := GetParam(Self)
		if err != nil {
			t.Fatal(err)
		}
		if param.Priority != 0 {
			t.Errorf("GetParam().Priority = %d, want 0", param.Priority)
		}

		st, err := ReadStatus(Self)
		if err != nil {
			t.Fatal(err)
		}
		if st.Policy != PolicyBatch {
			t.Errorf("procfs policy = %v, want %v", st.Policy, PolicyBatch)
		}

		if err := SetScheduler(Self, PolicyIdle, Param{}); err != nil {
			t.Fatalf("SetScheduler(idle) error = %v", err)
		}
		policy, err = GetScheduler(Self)
		if err != nil {
			t.Fatal(err)
		}
		if policy != PolicyIdle {
			t.Errorf("GetScheduler() = %v, want %v", policy, PolicyIdle)
		}
	})
}

func TestSchedulerInvalidTID(t *testing.T) {
	// A negative thread ID is rejected by the kernel before any lookup.
	if _, err := GetScheduler(TID(-1)); !errors.Is(err, unix.EINVAL) {
		t.Errorf("GetScheduler(-1) error = %v, want EINVAL", err)
	}
	if _, err := GetParam(TID(-1)); !errors.Is(err, unix.EINVAL) {
		t.Errorf("GetParam(-1) error = %v, want EINVAL", err)
	}
	if err := SetParam(TID(-1), Param{}); !errors.Is(err, unix.EINVAL) {
		t.Errorf("SetParam(-1) error = %v, want EINVAL", err)
	}
	if err := SetScheduler(TID(-1), PolicyOther, Param{}); !errors.Is(err, unix.EINVAL) {
		t.Errorf("SetScheduler(-1) error = %v, want EINVAL", err)
	}

	var opErr *OpError
	_, err := GetScheduler(TID(-1))
	if !errors.As(err, &opErr) {
		t.Fatal("error should be an *OpError")
	}
	if opErr.TID != TID(-1) || opErr.Op != OpGetScheduler {
		t.Errorf("OpError = %+v", opErr)
	}
}

func TestNiceRoundTrip(t *testing.T) {
	runLocked(func(tid TID) {
		current, err := GetNice(Self)
		if err != nil {
			t.Fatalf("GetNice(Self) error = %v", err)
		}
		if current < NiceMin || current > NiceMax {
			t.Fatalf("GetNice(Self) = %d, want %d..%d", current, NiceMin, NiceMax)
		}

		// Raising nice needs no privilege; the thread dies afterwards.
		target := current
		if target < NiceMax {
			target++
		}
		if err := SetNice(Self, target); err != nil {
			t.Fatalf("SetNice(Self, %d) error = %v", target, err)
		}

		got, err := GetNice(Self)
		if err != nil {
			t.Fatal(err)
		}
		if got != target {
			t.Errorf("GetNice() after SetNice = %d, want %d", got, target)
		}

		// procfs reports the same value, proving the 20-n translation.
		st, err := ReadStatus(Self)
		if err != nil {
			t.Fatal(err)
		}
		if st.Nice != target {
			t.Errorf("procfs nice = %d, want %d", st.Nice, target)
		}
	})
}

func TestSetNiceRange(t *testing.T) {
	for _, nice := range []int{-21, 20, 100, -100} {
		err := SetNice(Self, nice)
		if !errors.Is(err, ErrNiceRange) {
			t.Errorf("SetNice(Self, %d) error = %v, want ErrNiceRange", nice, err)
		}
	}
}

func TestGetNiceProcess(t *testing.T) {
	// The main thread's ID equals the process ID.
	nice, err := GetNice(TID(os.Getpid()))
	if err != nil {
		t.Fatalf("GetNice(main thread) error = %v", err)
	}
	if nice < NiceMin || nice > NiceMax {
		t.Errorf("GetNice(main thread) = %d, want %d..%d", nice, NiceMin, NiceMax)
	}
}
