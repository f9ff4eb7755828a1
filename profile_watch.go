package preemptrt

// ProfileEvent carries one reload from watching a profile file: either the
// freshly loaded profile set or the error that prevented loading it.
type ProfileEvent struct {
	Profiles []Profile
	Err      error
}

// WatchCleanupFunc stops a watch, waits for its goroutine to exit, and
// returns the goroutine's final error.
type WatchCleanupFunc func() error
