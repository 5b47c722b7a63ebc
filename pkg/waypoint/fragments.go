package waypoint

import (
	"context"
	"fmt"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/fragment"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

// LoadFragment loads dest into the placeholder hostID of the current page.
// The page content root (or its element) must expose the placeholder
// through view.HostProvider.
func (c *Controller) LoadFragment(ctx context.Context, hostID string, dest Destination) (*fragment.Load, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	page := c.page.Current()
	if page == nil {
		return nil, fmt.Errorf("%w: %s (no page)", ErrNoHost, hostID)
	}

	var host view.Container
	var ok bool
	if hp, isProvider := page.Root.(view.HostProvider); isProvider {
		host, ok = hp.Host(hostID)
	}
	if !ok {
		if hp, isProvider := page.Element.(view.HostProvider); isProvider {
			host, ok = hp.Host(hostID)
		}
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoHost, hostID)
	}
	return c.fragments.Load(ctx, hostID, host, string(dest)), nil
}
