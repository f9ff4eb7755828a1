package preemptrt

import (
	"context"
	"sync"
)

// Manager applies scheduling changes to many threads concurrently.
// It provides bulk operations with configurable concurrency.
type Manager struct {
	// Concurrency is the maximum number of concurrent operations
	Concurrency int
}

// ManagerOption configures a Manager
type ManagerOption func(*Manager)

// WithConcurrency sets the maximum number of concurrent operations
func WithConcurrency(n int) ManagerOption {
	return func(m *Manager) {
		m.Concurrency = n
	}
}

// NewManager creates a new Manager with default settings
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		Concurrency: DefaultManagerConcurrency,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.Concurrency < 1 {
		m.Concurrency = 1
	}

	return m
}

// execute runs op against every thread with bounded concurrency. The context
// gates semaphore acquisition only: the sched_* calls themselves do not
// block, so there is no per-operation timeout.
func (m *Manager) execute(ctx context.Context, tids []TID, op func(TID) error) error {
	if len(tids) == 0 {
		return nil
	}

	// Semaphore for concurrency control
	sem := make(chan struct{}, m.Concurrency)

	var wg sync.WaitGroup
	var mu sync.Mutex
	merr := &MultiError{}

	for _, tid := range tids {
		wg.Add(1)
		go func(tid TID) {
			defer wg.Done()

			// Acquire semaphore slot
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				mu.Lock()
				merr.Add(ctx.Err())
				mu.Unlock()
				return
			}

			if err := op(tid); err != nil {
				mu.Lock()
				merr.Add(err)
				mu.Unlock()
			}
		}(tid)
	}

	wg.Wait()

	return merr.Err()
}

// Apply installs the profile on all of the given threads.
func (m *Manager) Apply(ctx context.Context, profile Profile, tids ...TID) error {
	return m.execute(ctx, tids, profile.Apply)
}

// ApplyProcess installs the profile on every thread of a process, the bulk
// equivalent of running chrt against each entry of /proc/<pid>/task.
// Threads created by the process after the task listing was read are not
// covered.
func (m *Manager) ApplyProcess(ctx context.Context, profile Profile, pid int) error {
	tids, err := ProcessThreads(pid)
	if err != nil {
		return err
	}
	return m.Apply(ctx, profile, tids...)
}

// Status retrieves scheduling snapshots for the given threads. Threads that
// could not be read are missing from the map and their errors aggregated in
// the returned error.
func (m *Manager) Status(ctx context.Context, tids ...TID) (map[TID]Status, error) {
	if len(tids) == 0 {
		return make(map[TID]Status), nil
	}

	// Semaphore for concurrency control
	sem := make(chan struct{}, m.Concurrency)

	var wg sync.WaitGroup
	var mu sync.Mutex
	results := make(map[TID]Status)
	merr := &MultiError{}

	for _, tid := range tids {
		wg.Add(1)
		go func(tid TID) {
			defer wg.Done()

			// Acquire semaphore slot
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				mu.Lock()
				merr.Add(ctx.Err())
				mu.Unlock()
				return
			}

			status, err := ReadStatus(tid)
			if err != nil {
				mu.Lock()
				merr.Add(err)
				mu.Unlock()
				return
			}

			mu.Lock()
			results[tid] = status
			mu.Unlock()
		}(tid)
	}

	wg.Wait()

	return results, merr.Err()
}
