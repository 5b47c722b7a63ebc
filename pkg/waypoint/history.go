package waypoint

import (
	"context"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
)

// GoBack navigates to the destination on top of the back stack. The entry
// is popped only when that transition commits.
func (c *Controller) GoBack(ctx context.Context) *Transition {
	c.mu.Lock()
	top := c.history.Peek()
	c.mu.Unlock()

	if top == nil {
		return resolved("", Origin{Kind: OriginBack}, NoOp, ErrNoHistory)
	}
	return c.RequestNavigate(ctx, top.Destination, Origin{Kind: OriginBack})
}

// CanGoBack reports whether the back stack has an entry.
func (c *Controller) CanGoBack() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.history.IsEmpty()
}

// History returns the back stack, oldest first.
func (c *Controller) History() []router.StackEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.Entries()
}

// Step navigates delta enabled items away from the destination being
// navigated to, or the current destination when nothing is in flight, in
// navigation index order. Repeated steps during a build therefore advance
// past the pending target. It resolves as NoOp at either end of the index.
func (c *Controller) Step(ctx context.Context, delta int, source string) *Transition {
	from := c.stepOrigin()
	next, ok := c.index.Next(string(from), delta)
	origin := Origin{Kind: OriginStep, Source: source}
	if !ok {
		return resolved(from, origin, NoOp, nil)
	}
	return c.RequestNavigate(ctx, Destination(next), origin)
}

func (c *Controller) stepOrigin() Destination {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t := c.pageTasks.Current(); t != nil && t.Valid() {
		return Destination(t.Target())
	}
	return c.current
}
