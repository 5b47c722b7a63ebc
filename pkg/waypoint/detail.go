package waypoint

import (
	"context"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/layout"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/slot"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

// Relayout recomputes the layout for the current viewport and applies it to
// the displayed content. Hosts call it when the viewport changes.
func (c *Controller) Relayout() layout.Result {
	c.mu.Lock()
	paired := c.currentMaster != ""
	revealed := c.detailRevealed
	c.mu.Unlock()

	res := c.compute(paired, revealed)
	var master *slot.Content
	if c.master != nil {
		master = c.master.Current()
	}
	c.apply(res, c.page.Current(), master)
	return res
}

// ShowDetail reveals the page content while the master is maximized.
// With the master in a lane beside the page it only records the choice.
func (c *Controller) ShowDetail(ctx context.Context) error {
	return c.setDetailRevealed(ctx, true)
}

// HideDetail returns to the maximized master.
func (c *Controller) HideDetail(ctx context.Context) error {
	return c.setDetailRevealed(ctx, false)
}

// DetailRevealed reports whether the page content was revealed over a
// maximized master.
func (c *Controller) DetailRevealed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detailRevealed
}

func (c *Controller) setDetailRevealed(ctx context.Context, revealed bool) error {
	if c.closed.Load() {
		return ErrClosed
	}

	c.mu.Lock()
	if c.currentMaster == "" || c.detailRevealed == revealed {
		c.mu.Unlock()
		return nil
	}
	c.detailRevealed = revealed
	c.mu.Unlock()

	res := c.Relayout()
	if !res.MasterMaximized {
		return nil
	}

	var master *slot.Content
	if c.master != nil {
		master = c.master.Current()
	}
	page := c.page.Current()

	m := view.Motion{Kind: view.MotionSlide, Direction: view.DirectionForward, Offset: view.Offset{X: res.Page.W}}
	entering, leaving := page, master
	if !revealed {
		m.Direction = view.DirectionBackward
		m.Offset = m.Offset.Negate()
		entering, leaving = master, page
	}

	if err := c.animator.AnimateExit(ctx, slot.Elements(leaving), m.Exit()); err != nil {
		c.logger.Warn("Detail exit animation failed", "error", err)
	}
	if err := c.animator.AnimateEnter(ctx, slot.Elements(entering), m); err != nil {
		c.logger.Warn("Detail enter animation failed", "error", err)
	}
	c.persist(c.logger)
	return ctx.Err()
}
