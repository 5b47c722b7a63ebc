package navindex

import (
	"context"
	"time"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

// SetOrientation switches the active list widget to o.
//
// Only one change runs at a time. A call made while a change is in
// progress records o as the pending request (replacing any earlier pending
// one) and returns nil immediately; the running call applies it after the
// retry interval, under the context of the caller that requested it. A
// pending request whose caller's context ends before it is applied is
// dropped. The outgoing widget is hidden and the incoming one shown under
// a single lock, so both widgets are never visible together.
//
// The returned error is ctx.Err() when ctx ended while a request made with
// it was waiting to be applied.
func (x *Index) SetOrientation(ctx context.Context, o view.Orientation) error {
	x.mu.Lock()
	if x.state == stateChanging {
		x.pending = &orientationRequest{ctx: ctx, o: o}
		x.mu.Unlock()
		x.logger.Debug("Orientation change in progress, deferring", "orientation", o.String())
		return nil
	}
	if x.orientation == o {
		x.mu.Unlock()
		return nil
	}
	x.state = stateChanging
	x.mu.Unlock()

	var err error
	req := orientationRequest{ctx: ctx, o: o}
	for {
		if req.ctx.Err() == nil && x.Orientation() != req.o {
			x.switchTo(req.ctx, req.o)
		}

		x.mu.Lock()
		if x.pending == nil {
			x.state = stateIdle
			x.mu.Unlock()
			return err
		}
		req = *x.pending
		x.pending = nil
		x.mu.Unlock()

		if werr := x.yield(req.ctx); werr != nil {
			x.logger.Debug("Dropping orientation change", "orientation", req.o.String(), "error", werr)
			if req.ctx == ctx {
				err = werr
			}
		}
	}
}

// yield waits out the retry interval before a deferred change is applied.
func (x *Index) yield(ctx context.Context) error {
	timer := time.NewTimer(x.retry)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// switchTo runs one exit/swap/enter sequence. Animation failures are logged
// and treated as complete.
func (x *Index) switchTo(ctx context.Context, o view.Orientation) {
	x.mu.Lock()
	old := x.active()
	shown := x.shown && !x.exiting
	x.mu.Unlock()

	if shown {
		if err := x.animator.AnimateExit(ctx, []view.Element{old}, view.Motion{}); err != nil {
			x.logger.Warn("Index exit animation failed", "error", err)
		}
	}

	x.mu.Lock()
	from := x.orientation
	old.show(false)
	x.orientation = o
	next := x.active()
	x.applyGroupLocked(x.activeGroup)
	next.SetBounds(old.snapshot().Bounds)
	shown = x.shown && !x.exiting
	next.show(shown)
	x.mu.Unlock()

	x.logger.Debug("Orientation changed", "from", from.String(), "to", o.String())

	if shown {
		if err := x.animator.AnimateEnter(ctx, []view.Element{next}, view.Motion{}); err != nil {
			x.logger.Warn("Index enter animation failed", "error", err)
		}
	}
}
