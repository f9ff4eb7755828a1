//go:build !linux && !darwin

package preemptrt

import (
	"context"
	"fmt"
	"runtime"
)

// WatchProfiles watches a profile file for changes (stub - file watching is
// not supported on this platform).
func WatchProfiles(ctx context.Context, path string) (<-chan ProfileEvent, WatchCleanupFunc, error) {
	return nil, nil, fmt.Errorf("preemptrt: watch profiles %s: %w: %s", path, ErrUnsupportedPlatform, runtime.GOOS)
}
