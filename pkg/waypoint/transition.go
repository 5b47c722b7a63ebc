package waypoint

import (
	"context"

	"go.uber.org/atomic"
)

// Transition is the handle of one navigation request. Every request returns
// one, including requests that resolve immediately.
type Transition struct {
	destination Destination
	origin      Origin
	id          uint64

	phase   atomic.Int32
	done    chan struct{}
	outcome Outcome
	err     error
}

func newTransition(dest Destination, origin Origin, id uint64) *Transition {
	return &Transition{
		destination: dest,
		origin:      origin,
		id:          id,
		done:        make(chan struct{}),
	}
}

// resolved returns a finished transition.
func resolved(dest Destination, origin Origin, outcome Outcome, err error) *Transition {
	tr := newTransition(dest, origin, 0)
	tr.finish(outcome, err)
	return tr
}

func (t *Transition) Destination() Destination { return t.destination }
func (t *Transition) Origin() Origin           { return t.origin }

// ID is the task id behind the transition; zero for requests that resolved
// without starting one.
func (t *Transition) ID() uint64 { return t.id }

// Phase returns the step the transition is in.
func (t *Transition) Phase() Phase { return Phase(t.phase.Load()) }

func (t *Transition) setPhase(p Phase) { t.phase.Store(int32(p)) }

// Done is closed once the transition has resolved.
func (t *Transition) Done() <-chan struct{} { return t.done }

// Wait blocks until the transition resolves or ctx is done. The error is
// nil for Committed and NoOp.
func (t *Transition) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-t.done:
		return t.outcome, t.err
	case <-ctx.Done():
		return Superseded, ctx.Err()
	}
}

func (t *Transition) finish(outcome Outcome, err error) {
	t.outcome, t.err = outcome, err
	t.setPhase(PhaseDone)
	close(t.done)
}
