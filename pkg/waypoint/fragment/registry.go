// Package fragment tracks the independently loaded sub-views hosted inside
// placeholder elements of the current page.
//
// Each fragment runs its own guard → build → commit sequence in its own
// slot. Fragments are independent of each other: a new load for one host
// cancels only that host's pending build. None of them outlive the page
// that hosts them; the controller clears the registry on every page commit.
package fragment

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/guard"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/slot"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/task"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

// Options configures a Registry.
type Options struct {
	Renderer view.Renderer
	Guard    *guard.Chain
	Animator view.Animator            // Defaults to view.NoAnimation
	Resolve  func(dest string) string // Destination → address; identity when nil
	Reporter view.ErrorReporter       // Optional build failure sink
	Logger   *slog.Logger
}

// Fragment is one hosted sub-view.
type Fragment struct {
	hostID string
	slot   *slot.Slot
	tasks  task.Tracker

	mu    sync.Mutex
	loads map[*task.Task]*Load
}

func (f *Fragment) HostID() string { return f.hostID }

// Destination returns the committed destination, or "" before the first commit.
func (f *Fragment) Destination() string { return f.slot.CurrentDestination() }

// Root returns the committed content root, or nil.
func (f *Fragment) Root() view.Root {
	if c := f.slot.Current(); c != nil {
		return c.Root
	}
	return nil
}

// Loading reports whether a load is in flight.
func (f *Fragment) Loading() bool { return f.tasks.Current() != nil }

// Load is the handle of one fragment load request.
type Load struct {
	hostID string
	dest   string
	done   chan struct{}
	err    error
}

func completedLoad(hostID, dest string, err error) *Load {
	l := &Load{hostID: hostID, dest: dest, done: make(chan struct{}), err: err}
	close(l.done)
	return l
}

func (l *Load) HostID() string      { return l.hostID }
func (l *Load) Destination() string { return l.dest }

// Done is closed when the load has committed or been abandoned.
func (l *Load) Done() <-chan struct{} { return l.done }

// Wait blocks until the load finishes or ctx is done. A nil error means the
// destination is displayed in the host. Otherwise the error is
// guard.ErrDenied, guard.ErrTimeout, task.ErrCancelled or a *slot.BuildError.
func (l *Load) Wait(ctx context.Context) error {
	select {
	case <-l.done:
		return l.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Registry owns the fragments of the current page.
type Registry struct {
	renderer view.Renderer
	chain    *guard.Chain
	animator view.Animator
	resolve  func(string) string
	reporter view.ErrorReporter
	logger   *slog.Logger

	mu        sync.Mutex
	fragments map[string]*Fragment
	wg        sync.WaitGroup
}

// NewRegistry creates an empty registry.
func NewRegistry(opts Options) *Registry {
	if opts.Animator == nil {
		opts.Animator = view.NoAnimation{}
	}
	if opts.Resolve == nil {
		opts.Resolve = func(dest string) string { return dest }
	}
	if opts.Guard == nil {
		opts.Guard = guard.NewChain(guard.Options{Logger: opts.Logger})
	}
	return &Registry{
		renderer:  opts.Renderer,
		chain:     opts.Guard,
		animator:  opts.Animator,
		resolve:   opts.Resolve,
		reporter:  opts.Reporter,
		logger:    internal.OrDefault(opts.Logger, "fragment"),
		fragments: make(map[string]*Fragment),
	}
}

// Load displays dest inside host, registering the fragment on first use.
//
// Loading the destination that is already displayed (with nothing in
// flight) completes immediately. Loading the destination that is already
// in flight returns the existing handle. Any other request cancels the
// host's pending load and starts a new one.
func (r *Registry) Load(ctx context.Context, hostID string, host view.Container, dest string) *Load {
	r.mu.Lock()
	f, ok := r.fragments[hostID]
	if ok && f.slot.Container() != host {
		delete(r.fragments, hostID)
		f.tasks.CancelCurrent()
		f.slot.Reset()
		ok = false
	}
	if !ok {
		f = &Fragment{
			hostID: hostID,
			slot:   slot.New(hostID, host),
			loads:  make(map[*task.Task]*Load),
		}
		r.fragments[hostID] = f
	}

	if cur := f.tasks.Current(); cur != nil {
		if cur.Target() == dest {
			f.mu.Lock()
			l := f.loads[cur]
			f.mu.Unlock()
			if l != nil {
				r.mu.Unlock()
				return l
			}
		}
	} else if f.slot.CurrentDestination() == dest {
		r.mu.Unlock()
		return completedLoad(hostID, dest, nil)
	}

	t := f.tasks.Start(ctx, dest)
	l := &Load{hostID: hostID, dest: dest, done: make(chan struct{})}
	f.mu.Lock()
	f.loads[t] = l
	f.mu.Unlock()

	r.wg.Add(1)
	r.mu.Unlock()

	go r.run(f, t, l)
	return l
}

func (r *Registry) run(f *Fragment, t *task.Task, l *Load) {
	defer r.wg.Done()

	err := r.transition(f, t)

	f.mu.Lock()
	delete(f.loads, t)
	f.mu.Unlock()
	f.tasks.Release(t)

	l.err = err
	close(l.done)
}

func (r *Registry) transition(f *Fragment, t *task.Task) error {
	ctx := t.Context()
	dest := t.Target()
	log := r.logger.With("host", f.hostID, "destination", dest)

	res, err := r.chain.Run(ctx, slot.Roots(f.slot.Current()))
	if err != nil || !t.Valid() {
		t.Cancel()
		return task.ErrCancelled
	}
	if res != guard.Allow {
		t.Cancel()
		log.Info("Fragment load stopped by guard", "result", res.String())
		return res.Err()
	}

	c, err := f.slot.BeginPending(dest)
	if err != nil {
		t.Cancel()
		r.report(log, dest, err)
		return err
	}

	root, err := r.renderer.Render(ctx, r.resolve(dest), c.Element)
	if err == nil && root == nil {
		err = slot.ErrNoContent
	}
	if !t.Valid() {
		if root != nil {
			f.slot.Attach(c, root)
		}
		f.slot.Discard(c)
		return task.ErrCancelled
	}
	if err != nil {
		f.slot.Discard(c)
		t.Cancel()
		buildErr := &slot.BuildError{Destination: dest, Op: "render", Err: err}
		r.report(log, dest, buildErr)
		return buildErr
	}
	if !f.slot.Attach(c, root) {
		return task.ErrCancelled
	}

	r.mu.Lock()
	if r.fragments[f.hostID] != f || !t.BeginCommit() {
		r.mu.Unlock()
		f.slot.Discard(c)
		return task.ErrCancelled
	}
	prev, err := f.slot.Commit(c)
	if err != nil {
		r.mu.Unlock()
		t.Cancel()
		f.slot.Discard(c)
		return task.ErrCancelled
	}
	c.Element.SetVisible(true)
	r.mu.Unlock()

	// The commit phase ignores cancellation; animations run to completion.
	animCtx := context.WithoutCancel(ctx)
	if prev != nil {
		if err := r.animator.AnimateExit(animCtx, slot.Elements(prev), view.Motion{}); err != nil {
			log.Warn("Fragment exit animation failed", "error", err)
		}
		f.slot.Destroy(prev)
	}
	if err := r.animator.AnimateEnter(animCtx, slot.Elements(c), view.Motion{}); err != nil {
		log.Warn("Fragment enter animation failed", "error", err)
	}

	t.Finish()
	log.Debug("Fragment committed")
	return nil
}

func (r *Registry) report(log *slog.Logger, dest string, err error) {
	log.Error("Fragment build failed", "error", err)
	if r.reporter != nil {
		r.reporter.ReportError(dest, err)
	}
}

// Get returns the fragment registered for hostID.
func (r *Registry) Get(hostID string) (*Fragment, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.fragments[hostID]
	return f, ok
}

// Len returns the number of registered fragments.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.fragments)
}

// HostIDs returns the registered host ids in sorted order.
func (r *Registry) HostIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Sorted(maps.Keys(r.fragments))
}

// Roots returns the committed roots of every fragment, for the page guard.
func (r *Registry) Roots() []view.Root {
	r.mu.Lock()
	defer r.mu.Unlock()
	roots := make([]view.Root, 0, len(r.fragments))
	for _, id := range slices.Sorted(maps.Keys(r.fragments)) {
		roots = append(roots, slot.Roots(r.fragments[id].slot.Current())...)
	}
	return roots
}

// CancelAll cancels every fragment's in-flight load. Committed content stays.
func (r *Registry) CancelAll() {
	r.mu.Lock()
	frags := slices.Collect(maps.Values(r.fragments))
	r.mu.Unlock()

	for _, f := range frags {
		f.tasks.CancelCurrent()
	}
}

// Clear cancels every load, destroys every fragment's content and empties
// the registry.
func (r *Registry) Clear() {
	r.mu.Lock()
	frags := r.fragments
	r.fragments = make(map[string]*Fragment)
	r.mu.Unlock()

	for _, f := range frags {
		f.tasks.CancelCurrent()
		f.slot.Reset()
	}
	if len(frags) > 0 {
		r.logger.Debug("Fragments cleared", "count", len(frags))
	}
}

// Wait blocks until every load goroutine has returned.
func (r *Registry) Wait() {
	r.wg.Wait()
}
