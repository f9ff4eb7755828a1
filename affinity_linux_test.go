package preemptrt

import (
	"errors"
	"sort"
	"testing"
)

func TestGetAffinitySelf(t *testing.T) {
	cpus, err := GetAffinity(Self)
	if err != nil {
		t.Fatalf("GetAffinity(Self) error = %v", err)
	}
	if len(cpus) == 0 {
		t.Fatal("GetAffinity(Self) returned no CPUs")
	}
	if !sort.IntsAreSorted(cpus) {
		t.Errorf("GetAffinity(Self) = %v, want ascending order", cpus)
	}
	for _, cpu := range cpus {
		if cpu < 0 {
			t.Errorf("negative CPU index %d", cpu)
		}
	}
}

func TestSetAffinityRoundTrip(t *testing.T) {
	runLocked(func(tid TID) {
		cpus, err := GetAffinity(Self)
		if err != nil {
			t.Fatal(err)
		}

		// Pin the scratch thread to a single CPU and read it back. The
		// thread is destroyed afterwards, so no restore is needed.
		want := []int{cpus[0]}
		if err := SetAffinity(Self, want); err != nil {
			t.Fatalf("SetAffinity(Self, %v) error = %v", want, err)
		}

		got, err := GetAffinity(Self)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0] != want[0] {
			t.Errorf("GetAffinity() after pin = %v, want %v", got, want)
		}
	})
}

func TestSetAffinityEmpty(t *testing.T) {
	err := SetAffinity(Self, nil)
	if !errors.Is(err, ErrEmptyCPUSet) {
		t.Fatalf("SetAffinity(Self, nil) error = %v, want ErrEmptyCPUSet", err)
	}

	var opErr *OpError
	if !errors.As(err, &opErr) {
		t.Fatal("error should be an *OpError")
	}
	if opErr.Op != OpSetAffinity {
		t.Errorf("Op = %v, want %v", opErr.Op, OpSetAffinity)
	}
}

func TestSetAffinityNegativeCPU(t *testing.T) {
	if err := SetAffinity(Self, []int{0, -1}); err == nil {
		t.Fatal("SetAffinity with a negative CPU index should fail")
	}
}
