package waypoint

import (
	"context"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/session"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

// Snapshot captures the committed navigation state.
func (c *Controller) Snapshot() session.State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := session.State{
		Destination:    string(c.current),
		Master:         string(c.currentMaster),
		DetailRevealed: c.detailRevealed,
		Orientation:    c.index.Orientation().String(),
	}
	for _, e := range c.history.Entries() {
		st.History = append(st.History, session.Entry{Destination: string(e.Destination)})
	}
	return st
}

// Restore reloads the back stack and orientation from st and navigates to
// its destination, or to home when st has none.
func (c *Controller) Restore(ctx context.Context, st session.State) *Transition {
	dest := Destination(st.Destination)
	if dest == "" {
		dest = c.Home()
	}

	entries := make([]router.StackEntry, 0, len(st.History))
	for _, e := range st.History {
		entries = append(entries, router.StackEntry{Destination: Destination(e.Destination)})
	}
	c.mu.Lock()
	c.history.Load(entries)
	c.mu.Unlock()

	if st.Orientation != "" {
		if err := c.index.SetOrientation(ctx, view.ParseOrientation(st.Orientation)); err != nil {
			c.logger.Warn("Failed to restore orientation", "error", err)
		}
	}

	tr := c.RequestNavigate(ctx, dest, Origin{Kind: OriginRestore})
	if st.DetailRevealed {
		c.spawn(func() {
			if outcome, _ := tr.Wait(ctx); outcome == Committed {
				_ = c.ShowDetail(ctx)
			}
		})
	}
	return tr
}

// RestoreSaved restores the state saved in the session store, or navigates
// home when nothing was saved or no store is configured.
func (c *Controller) RestoreSaved(ctx context.Context) *Transition {
	if c.session != nil {
		st, ok, err := c.session.Load()
		if err != nil {
			c.logger.Warn("Failed to load session", "error", err)
		}
		if ok {
			return c.Restore(ctx, st)
		}
	}
	return c.RequestNavigate(ctx, c.Home(), Origin{Kind: OriginRestore})
}
