package waypoint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/fragment"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/guard"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/layout"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/motion"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/navindex"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/resources"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/session"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/slot"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/task"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

// Controller sequences page transitions: guard, build, commit.
//
// At most one page transition runs at a time; a new request cancels the
// running one unless it has begun committing. The committed destination,
// the master pairing and the navigation index selection are written only by
// the commit step.
type Controller struct {
	logger   *slog.Logger
	renderer view.Renderer
	animator view.Animator
	viewport view.ViewportSource
	reporter view.ErrorReporter

	routes    *router.Routes
	pairs     *router.Pairs
	chain     *guard.Chain
	engine    *layout.Engine
	index     *navindex.Index
	fragments *fragment.Registry
	catalog   *resources.Catalog
	session   *session.Store

	page   *slot.Slot
	master *slot.Slot // nil without a master container

	pageTasks task.Tracker

	ctx    context.Context
	cancel context.CancelFunc
	closed atomic.Bool
	wg     sync.WaitGroup

	// commitMu serializes commit phases. It is taken before mu.
	commitMu sync.Mutex

	mu             sync.Mutex
	home           Destination
	bypass         map[Destination]bool
	current        Destination
	currentAddress string
	currentMaster  Destination
	detailRevealed bool
	history        *router.Stack
	inflight       map[*task.Task]*Transition
	hooks          []func(Destination)
	lastLayout     layout.Result
}

// New creates a Controller. Renderer and PageContainer are required.
func New(c Collaborators, opts Options) (*Controller, error) {
	if c.Renderer == nil {
		return nil, errors.New("waypoint: renderer is required")
	}
	if c.PageContainer == nil {
		return nil, errors.New("waypoint: page container is required")
	}
	if c.Animator == nil {
		c.Animator = view.NoAnimation{}
	}
	if c.Viewport == nil {
		c.Viewport = view.FixedViewport{Width: 1024, Height: 768}
	}
	if opts.Home == "" {
		opts.Home = constants.DefaultHome
	}
	if opts.Routes == nil {
		opts.Routes = router.NewRoutes()
	}
	if opts.Pairs == nil {
		opts.Pairs = router.NewPairs()
	}

	logger := internal.OrDefault(opts.Logger, "controller")
	chain := guard.NewChain(guard.Options{Timeout: opts.GuardTimeout, Logger: logger})
	routes := opts.Routes

	ctl := &Controller{
		logger:   logger,
		renderer: c.Renderer,
		animator: c.Animator,
		viewport: c.Viewport,
		reporter: c.Reporter,
		routes:   routes,
		pairs:    opts.Pairs,
		chain:    chain,
		engine:   layout.NewEngineWithOptions(opts.Layout),
		index: navindex.New(opts.NavItems, navindex.Options{
			Orientation:   opts.Orientation,
			RetryInterval: opts.OrientationRetry,
			Animator:      c.Animator,
			Icons:         opts.Icons,
			Logger:        logger,
		}),
		fragments: fragment.NewRegistry(fragment.Options{
			Renderer: c.Renderer,
			Guard:    chain,
			Animator: c.Animator,
			Resolve:  func(dest string) string { return routes.Resolve(Destination(dest)) },
			Reporter: c.Reporter,
			Logger:   logger,
		}),
		catalog:  opts.Catalog,
		session:  opts.Session,
		page:     slot.New("page", c.PageContainer),
		home:     opts.Home,
		bypass:   make(map[Destination]bool, len(opts.GuardBypass)),
		history:  router.NewStackWithLimit(opts.HistoryLimit),
		inflight: make(map[*task.Task]*Transition),
	}
	if c.MasterContainer != nil {
		ctl.master = slot.New("master", c.MasterContainer)
	}
	for _, d := range opts.GuardBypass {
		ctl.bypass[d] = true
	}
	if ctl.catalog != nil {
		relabel := ctl.catalog.Relabel(ctl.index)
		relabel("")
		ctl.hooks = append(ctl.hooks, func(d Destination) { relabel(string(d)) })
	}
	ctl.ctx, ctl.cancel = context.WithCancel(context.Background())
	ctl.Relayout()
	return ctl, nil
}

// RequestNavigate starts a transition to dest and returns its handle.
//
// Requesting the displayed destination is a no-op, and so is requesting a
// destination whose transition is already in flight: the in-flight handle
// is returned. Any other request cancels the running page transition.
// Cancelling ctx cancels the transition unless it has begun committing.
func (c *Controller) RequestNavigate(ctx context.Context, dest Destination, origin Origin) *Transition {
	if c.closed.Load() {
		return resolved(dest, origin, Superseded, ErrClosed)
	}

	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		return resolved(dest, origin, Superseded, ErrClosed)
	}
	cur := c.pageTasks.Current()
	if cur != nil && cur.Target() == string(dest) {
		if tr := c.inflight[cur]; tr != nil {
			c.mu.Unlock()
			return tr
		}
	}

	if c.currentAddress != "" && c.routes.Resolve(dest) == c.currentAddress {
		if cur == nil || cur.State() == task.StateRunning {
			if cur != nil {
				cur.Cancel()
				c.logger.Debug("Request for displayed destination cancels transition",
					"destination", dest, "cancelled", cur.Target())
			}
			c.mu.Unlock()
			return resolved(dest, origin, NoOp, nil)
		}
	}

	c.fragments.CancelAll()
	t := c.pageTasks.Start(c.ctx, string(dest))
	tr := newTransition(dest, origin, t.ID())
	tr.setPhase(PhaseGuarding)
	c.inflight[t] = tr
	c.wg.Add(1)
	c.mu.Unlock()

	c.logger.Debug("Navigation requested", "destination", dest, "origin", origin.Kind.String(), "task", t.ID())

	stop := context.AfterFunc(ctx, func() { t.Cancel() })
	go func() {
		defer c.wg.Done()
		defer stop()
		outcome, err := c.transition(t, tr)

		c.mu.Lock()
		delete(c.inflight, t)
		c.mu.Unlock()
		c.pageTasks.Release(t)

		tr.finish(outcome, err)
	}()
	return tr
}

func (c *Controller) transition(t *task.Task, tr *Transition) (Outcome, error) {
	ctx := t.Context()
	dest := Destination(t.Target())
	log := c.logger.With("destination", dest, "task", t.ID())

	// Guarding
	roots := c.fragments.Roots()
	c.mu.Lock()
	bypass := c.bypass[dest]
	c.mu.Unlock()
	if !bypass {
		roots = append(slot.Roots(c.page.Current()), roots...)
	}

	res, err := c.chain.Run(ctx, roots)
	if err != nil || !t.Valid() {
		t.Cancel()
		return Superseded, ErrSuperseded
	}
	if res != guard.Allow {
		t.Cancel()
		c.index.Sync(string(c.CurrentDestination()))
		if res == guard.Timeout {
			log.Warn("Transition abandoned: unload check timed out")
			return GuardTimeout, ErrGuardTimeout
		}
		log.Info("Transition abandoned: unload denied")
		return GuardDenied, ErrGuardDenied
	}

	// Building
	tr.setPhase(PhaseBuilding)
	master, paired := c.masterFor(dest)

	c.mu.Lock()
	prevMaster := c.currentMaster
	revealed := c.detailRevealed && master == prevMaster
	c.mu.Unlock()
	buildMaster := paired && master != prevMaster

	var pageC, masterC *slot.Content
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pageC, err = c.build(gctx, t, c.page, dest)
		return err
	})
	if buildMaster {
		g.Go(func() error {
			var err error
			masterC, err = c.build(gctx, t, c.master, master)
			return err
		})
	}
	err = g.Wait()

	discard := func() {
		c.page.Discard(pageC)
		if c.master != nil {
			c.master.Discard(masterC)
		}
	}
	if !t.Valid() {
		discard()
		return Superseded, ErrSuperseded
	}
	if err != nil {
		discard()
		t.Cancel()
		if !IsBuildError(err) {
			return Superseded, ErrSuperseded
		}
		log.Error("Transition abandoned: build failed", "error", err)
		if c.reporter != nil {
			var buildErr *BuildError
			errors.As(err, &buildErr)
			c.reporter.ReportError(buildErr.Destination, err)
		}
		c.index.Sync(string(c.CurrentDestination()))
		return BuildFailed, err
	}

	// Size both trees while they are still hidden.
	sized := c.compute(paired, revealed)
	pageC.Element.SetBounds(sized.Page)
	if masterC != nil {
		masterC.Element.SetBounds(sized.Master)
	}

	return c.commit(t, tr, commitPlan{
		dest:     dest,
		page:     pageC,
		master:   master,
		masterC:  masterC,
		paired:   paired,
		revealed: revealed,
	})
}

type commitPlan struct {
	dest     Destination
	page     *slot.Content
	master   Destination
	masterC  *slot.Content
	paired   bool
	revealed bool
}

func (c *Controller) commit(t *task.Task, tr *Transition, p commitPlan) (Outcome, error) {
	log := c.logger.With("destination", p.dest, "task", t.ID())

	c.commitMu.Lock()
	defer c.commitMu.Unlock()

	c.mu.Lock()
	if !t.BeginCommit() {
		c.mu.Unlock()
		c.page.Discard(p.page)
		if c.master != nil {
			c.master.Discard(p.masterC)
		}
		return Superseded, ErrSuperseded
	}
	tr.setPhase(PhaseCommitting)

	prevPage, err := c.page.Commit(p.page)
	if err != nil {
		// Unreachable while slot writes happen under mu; keep the old view.
		c.mu.Unlock()
		log.Error("Page commit failed", "error", err)
		t.Finish()
		return Superseded, fmt.Errorf("commit page: %w", err)
	}
	var prevMaster *slot.Content
	switch {
	case c.master == nil:
	case p.masterC != nil:
		prevMaster, _ = c.master.Commit(p.masterC)
	case !p.paired:
		prevMaster = c.master.Clear()
	}
	prevDest := c.current
	c.mu.Unlock()

	first := prevPage == nil
	m := motion.Select(c.index, string(prevDest), string(p.dest), string(c.home))

	res := c.compute(p.paired, p.revealed)
	var masterC *slot.Content
	if c.master != nil {
		masterC = c.master.Current()
	}
	c.apply(res, p.page, masterC)

	// Commit ignores cancellation; animations always run to completion.
	if !first {
		animCtx := context.WithoutCancel(t.Context())
		var anim errgroup.Group
		anim.Go(func() error {
			return c.animator.AnimateExit(animCtx, slot.Elements(prevPage, prevMaster), m.Exit())
		})
		anim.Go(func() error {
			return c.animator.AnimateEnter(animCtx, slot.Elements(p.page, p.masterC), m)
		})
		if err := anim.Wait(); err != nil {
			log.Warn("Transition animation failed", "error", err)
		}
	}

	c.page.Destroy(prevPage)
	if c.master != nil {
		c.master.Destroy(prevMaster)
	}
	c.fragments.Clear()

	c.mu.Lock()
	c.current = p.dest
	c.currentAddress = c.routes.Resolve(p.dest)
	if p.paired {
		c.currentMaster = p.master
	} else {
		c.currentMaster = ""
	}
	c.detailRevealed = p.revealed
	if prevDest != "" {
		if tr.origin.Kind == OriginBack {
			if top := c.history.Peek(); top != nil && top.Destination == p.dest {
				c.history.Pop()
			}
		} else {
			c.history.Push(prevDest, nil)
		}
	}
	hooks := append([]func(Destination){}, c.hooks...)
	c.mu.Unlock()

	c.index.Sync(string(p.dest))
	c.Relayout()
	t.Finish()

	log.Info("Transition committed",
		"from", prevDest,
		"motion", m.Kind.String(),
		"direction", m.Direction.String(),
		"origin", tr.origin.Kind.String())

	for _, hook := range hooks {
		hook(p.dest)
	}
	c.persist(log)
	return Committed, nil
}

// build renders dest off-screen into a new pending content of s.
func (c *Controller) build(ctx context.Context, t *task.Task, s *slot.Slot, dest Destination) (*slot.Content, error) {
	c.mu.Lock()
	if !t.Valid() {
		c.mu.Unlock()
		return nil, task.ErrCancelled
	}
	content, err := s.BeginPending(string(dest))
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	root, err := c.renderer.Render(ctx, c.routes.Resolve(dest), content.Element)
	if err == nil && root == nil {
		err = slot.ErrNoContent
	}
	if err != nil {
		if ctx.Err() != nil {
			return content, ctx.Err()
		}
		return content, &BuildError{Destination: string(dest), Op: "render", Err: err}
	}
	if !s.Attach(content, root) {
		return nil, task.ErrCancelled
	}
	return content, nil
}

func (c *Controller) masterFor(dest Destination) (Destination, bool) {
	if c.master == nil {
		return "", false
	}
	return c.pairs.Master(dest)
}

func (c *Controller) compute(paired, revealed bool) layout.Result {
	return c.engine.Compute(layout.Input{
		Viewport:       c.viewport.Viewport(),
		MasterPaired:   paired,
		DetailRevealed: revealed,
		IndexPresent:   !c.index.Empty(),
		Orientation:    c.index.Orientation(),
	})
}

func (c *Controller) apply(res layout.Result, page, master *slot.Content) {
	if page != nil {
		page.Element.SetBounds(res.Page)
		page.Element.SetVisible(res.PageVisible)
	}
	if master != nil {
		master.Element.SetBounds(res.Master)
		master.Element.SetVisible(res.MasterVisible)
	}
	c.index.SetBounds(res.Index)

	c.mu.Lock()
	c.lastLayout = res
	c.mu.Unlock()
}

func (c *Controller) persist(log *slog.Logger) {
	if c.session == nil {
		return
	}
	if err := c.session.Save(c.Snapshot()); err != nil {
		log.Warn("Failed to save session", "error", err)
	}
}

// OnTransitionCommitted registers fn to run after every successful commit.
func (c *Controller) OnTransitionCommitted(fn func(Destination)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, fn)
}

// CurrentDestination returns the committed page destination.
func (c *Controller) CurrentDestination() Destination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// CurrentMasterDestination returns the displayed master, or "".
func (c *Controller) CurrentMasterDestination() Destination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentMaster
}

// IsMasterVisible reports whether a master is displayed and visible.
func (c *Controller) IsMasterVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentMaster != "" && c.lastLayout.MasterVisible
}

// IsMasterMaximized reports whether the master occupies the page area.
func (c *Controller) IsMasterMaximized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentMaster != "" && c.lastLayout.MasterMaximized
}

// IsPageVisible reports whether the page content is visible.
func (c *Controller) IsPageVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current != "" && c.lastLayout.PageVisible
}

// Layout returns the most recently applied layout.
func (c *Controller) Layout() layout.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastLayout
}

// Phase returns the phase of the in-flight page transition.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t := c.pageTasks.Current(); t != nil {
		if tr := c.inflight[t]; tr != nil {
			return tr.Phase()
		}
	}
	return PhaseIdle
}

// Home returns the configured start destination.
func (c *Controller) Home() Destination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.home
}

// Index returns the secondary navigation index.
func (c *Controller) Index() *navindex.Index { return c.index }

// Fragments returns the fragment registry of the current page.
func (c *Controller) Fragments() *fragment.Registry { return c.fragments }

// Routes returns the route table.
func (c *Controller) Routes() *router.Routes { return c.routes }

// spawn runs fn on a goroutine tracked by Wait. It reports false, and does
// not run fn, once the controller is closed.
func (c *Controller) spawn(fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed.Load() {
		return false
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn()
	}()
	return true
}

// Wait blocks until every in-flight transition has resolved.
func (c *Controller) Wait() {
	c.wg.Wait()
	c.fragments.Wait()
}

// Close cancels in-flight work, tears down all content and waits for
// background goroutines. Later requests resolve with ErrClosed.
func (c *Controller) Close() error {
	c.mu.Lock()
	first := c.closed.CompareAndSwap(false, true)
	c.mu.Unlock()
	if !first {
		return nil
	}
	c.cancel()
	c.Wait()

	c.fragments.Clear()
	c.fragments.Wait()
	c.page.Reset()
	if c.master != nil {
		c.master.Reset()
	}
	return nil
}
