package waypoint

import (
	"errors"
	"fmt"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/guard"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/slot"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/task"
)

// Sentinel errors for transition outcomes. None of them is fatal: the
// previous view stays displayed and interactive.
var (
	// ErrGuardDenied indicates content refused to unload.
	ErrGuardDenied = guard.ErrDenied

	// ErrGuardTimeout indicates the unload checks did not resolve in time.
	// It is handled exactly like ErrGuardDenied.
	ErrGuardTimeout = guard.ErrTimeout

	// ErrSuperseded indicates a later request replaced the transition before
	// it committed. This is normal flow control, not a failure.
	ErrSuperseded = fmt.Errorf("transition superseded: %w", task.ErrCancelled)

	// ErrClosed indicates the controller was closed.
	ErrClosed = errors.New("waypoint: controller closed")

	// ErrNoHistory indicates GoBack was called with an empty back stack.
	ErrNoHistory = errors.New("waypoint: no history")

	// ErrNoHost indicates a fragment host is not present in the current page.
	ErrNoHost = errors.New("waypoint: fragment host not found")
)

// BuildError reports content that could not be rendered. The transition is
// abandoned and the previous content retained.
type BuildError = slot.BuildError

// IsCancelled reports whether err means the transition was superseded or
// cancelled by its caller.
func IsCancelled(err error) bool {
	return errors.Is(err, task.ErrCancelled) || errors.Is(err, ErrClosed)
}

// IsGuardRejection reports whether err is a guard denial or timeout.
func IsGuardRejection(err error) bool {
	return errors.Is(err, ErrGuardDenied) || errors.Is(err, ErrGuardTimeout)
}

// IsBuildError checks if an error is a build failure.
func IsBuildError(err error) bool {
	var buildErr *BuildError
	return errors.As(err, &buildErr)
}
