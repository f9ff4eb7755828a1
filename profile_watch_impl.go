//go:build linux || darwin

package preemptrt

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"vawter.tech/stopper"
)

// profileWatchState tracks the last seen file content and the pending
// debounce timer for one watch. Debounced reloads run on timer goroutines
// the stopper does not track, so they register in reads while stopped is
// false; teardown sets stopped and waits for reads before closing the
// event channel.
type profileWatchState struct {
	mu        sync.Mutex
	lastData  []byte
	debouncer *time.Timer
	stopped   bool
	reads     sync.WaitGroup
}

// WatchProfiles watches a profile file and emits a ProfileEvent whenever
// its content changes, starting with the current content. The parent
// directory is watched rather than the file itself because SaveProfiles
// replaces the inode on every write. Write bursts are debounced by
// DefaultWatchDebounce and reloads with unchanged content are suppressed.
//
// The returned cleanup function stops the watch, closes the channel, and
// waits for the watch goroutine to exit. Cancelling ctx has the same
// effect.
func WatchProfiles(ctx context.Context, path string) (<-chan ProfileEvent, WatchCleanupFunc, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("preemptrt: watch profiles %s: %w", path, err)
	}

	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, nil, fmt.Errorf("preemptrt: watch profiles %s: %w", path, err)
	}

	ch := make(chan ProfileEvent, 10)
	state := &profileWatchState{}

	sctx := stopper.WithContext(ctx)
	sctx.Defer(func() {
		_ = watcher.Close()
		state.mu.Lock()
		state.stopped = true
		state.mu.Unlock()
		// A debounce timer that fired just before stopped was set may still
		// be sending; its select resolves promptly since Stopping is closed
		// by now.
		state.reads.Wait()
		close(ch)
	})

	cleanup := func() error {
		sctx.Stop(100 * time.Millisecond)
		return sctx.Wait()
	}

	readAndSend := func() {
		state.mu.Lock()
		if state.stopped {
			state.mu.Unlock()
			return
		}
		state.reads.Add(1)
		state.mu.Unlock()
		defer state.reads.Done()

		if sctx.IsStopping() {
			return
		}

		data, err := os.ReadFile(path)
		if err != nil {
			select {
			case ch <- ProfileEvent{Err: fmt.Errorf("preemptrt: watch profiles: %w", err)}:
			case <-sctx.Stopping():
			}
			return
		}

		state.mu.Lock()
		unchanged := state.lastData != nil && bytes.Equal(data, state.lastData)
		if !unchanged {
			state.lastData = data
		}
		state.mu.Unlock()
		if unchanged {
			return
		}

		profiles, err := parseProfiles(path, data)
		if err != nil {
			select {
			case ch <- ProfileEvent{Err: err}:
			case <-sctx.Stopping():
			}
			return
		}

		select {
		case ch <- ProfileEvent{Profiles: profiles}:
		case <-sctx.Stopping():
		}
	}

	// Emit the current content before any change arrives.
	readAndSend()

	sctx.Go(func(sctx *stopper.Context) error {
		sctx.Defer(func() {
			state.mu.Lock()
			if state.debouncer != nil {
				state.debouncer.Stop()
			}
			state.mu.Unlock()
		})

		for !sctx.IsStopping() {
			select {
			case <-sctx.Stopping():
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}

				if filepath.Base(event.Name) == base {
					state.mu.Lock()
					if state.debouncer != nil {
						state.debouncer.Stop()
					}
					state.debouncer = time.AfterFunc(DefaultWatchDebounce, readAndSend)
					state.mu.Unlock()
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil && !sctx.IsStopping() {
					select {
					case ch <- ProfileEvent{Err: err}:
					case <-sctx.Stopping():
						return nil
					}
				}
			}
		}
		return nil
	})

	return ch, cleanup, nil
}
