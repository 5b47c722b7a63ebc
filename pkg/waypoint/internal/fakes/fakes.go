// Package fakes provides scriptable collaborators for tests: a renderer whose
// builds can be blocked or failed per address, unload gates resolved by the
// test, and an animator that records every call.
package fakes

import (
	"context"
	"sync"

	"go.uber.org/atomic"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

// Root is rendered content without an unload check.
type Root struct {
	address  string
	element  view.Element
	disposed atomic.Bool
}

func NewRoot(address string, element view.Element) *Root {
	return &Root{address: address, element: element}
}

func (r *Root) Address() string       { return r.address }
func (r *Root) Element() view.Element { return r.element }
func (r *Root) Dispose()              { r.disposed.Store(true) }
func (r *Root) Disposed() bool        { return r.disposed.Load() }

// Host delegates to the element the root was mounted in.
func (r *Root) Host(id string) (view.Container, bool) {
	if hp, ok := r.element.(view.HostProvider); ok {
		return hp.Host(id)
	}
	return nil, false
}

// GuardedRoot is rendered content whose unload check is a Gate.
type GuardedRoot struct {
	*Root
	Gate *Gate
}

func (r *GuardedRoot) CheckUnload(ctx context.Context) (bool, error) {
	return r.Gate.CheckUnload(ctx)
}

// Gate is an unload check resolved by the test. Checks block until Allow,
// Deny or Fail is called; they do not observe context cancellation unless
// the gate is Abortable.
type Gate struct {
	Abortable bool

	mu      sync.Mutex
	calls   int
	allow   bool
	err     error
	decided chan struct{}
	once    sync.Once
	started chan struct{}
}

func NewGate() *Gate {
	return &Gate{decided: make(chan struct{}), started: make(chan struct{}, 64)}
}

// Allowing returns a gate that is already resolved to allow.
func Allowing() *Gate {
	g := NewGate()
	g.Allow()
	return g
}

// Denying returns a gate that is already resolved to deny.
func Denying() *Gate {
	g := NewGate()
	g.Deny()
	return g
}

func (g *Gate) CheckUnload(ctx context.Context) (bool, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()

	select {
	case g.started <- struct{}{}:
	default:
	}

	if g.Abortable {
		select {
		case <-g.decided:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	} else {
		<-g.decided
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.allow, g.err
}

func (g *Gate) resolve(allow bool, err error) {
	g.once.Do(func() {
		g.mu.Lock()
		g.allow, g.err = allow, err
		g.mu.Unlock()
		close(g.decided)
	})
}

func (g *Gate) Allow()         { g.resolve(true, nil) }
func (g *Gate) Deny()          { g.resolve(false, nil) }
func (g *Gate) Fail(err error) { g.resolve(false, err) }

// Started receives one value per CheckUnload invocation.
func (g *Gate) Started() <-chan struct{} { return g.started }

func (g *Gate) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// Renderer records Render calls and can block or fail them per address.
type Renderer struct {
	mu      sync.Mutex
	calls   []string
	blocks  map[string]chan struct{}
	errs    map[string]error
	guards  map[string]*Gate
	roots   map[string][]*Root
	started chan string
}

func NewRenderer() *Renderer {
	return &Renderer{
		blocks:  make(map[string]chan struct{}),
		errs:    make(map[string]error),
		guards:  make(map[string]*Gate),
		roots:   make(map[string][]*Root),
		started: make(chan string, 64),
	}
}

// Block makes Render for address wait until the returned channel is closed
// or the render context is cancelled.
func (r *Renderer) Block(address string) chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch := make(chan struct{})
	r.blocks[address] = ch
	return ch
}

// Fail makes Render for address return err.
func (r *Renderer) Fail(address string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs[address] = err
}

// Guard makes content rendered for address carry gate as its unload check.
func (r *Renderer) Guard(address string, gate *Gate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guards[address] = gate
}

func (r *Renderer) Render(ctx context.Context, address string, into view.Element) (view.Root, error) {
	r.mu.Lock()
	r.calls = append(r.calls, address)
	block := r.blocks[address]
	err := r.errs[address]
	gate := r.guards[address]
	r.mu.Unlock()

	select {
	case r.started <- address:
	default:
	}

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}

	root := NewRoot(address, into)
	r.mu.Lock()
	r.roots[address] = append(r.roots[address], root)
	r.mu.Unlock()

	into.Mount(address)
	if gate != nil {
		return &GuardedRoot{Root: root, Gate: gate}, nil
	}
	return root, nil
}

// Started receives the address of every Render call.
func (r *Renderer) Started() <-chan string { return r.started }

func (r *Renderer) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

func (r *Renderer) CallCount(address string) int {
	n := 0
	for _, c := range r.Calls() {
		if c == address {
			n++
		}
	}
	return n
}

// Roots returns every root rendered for address, oldest first.
func (r *Renderer) Roots(address string) []*Root {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Root, len(r.roots[address]))
	copy(out, r.roots[address])
	return out
}

// AnimatorCall is one recorded animation.
type AnimatorCall struct {
	Enter  bool
	IDs    []string
	Motion view.Motion
}

// Animator records calls. Hook, when set, runs inside each call and its
// error is returned.
type Animator struct {
	mu    sync.Mutex
	calls []AnimatorCall
	hook  func(ctx context.Context, call AnimatorCall) error
}

func (a *Animator) SetHook(hook func(ctx context.Context, call AnimatorCall) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hook = hook
}

func (a *Animator) AnimateEnter(ctx context.Context, elements []view.Element, motion view.Motion) error {
	return a.record(ctx, true, elements, motion)
}

func (a *Animator) AnimateExit(ctx context.Context, elements []view.Element, motion view.Motion) error {
	return a.record(ctx, false, elements, motion)
}

func (a *Animator) record(ctx context.Context, enter bool, elements []view.Element, motion view.Motion) error {
	call := AnimatorCall{Enter: enter, Motion: motion}
	for _, el := range elements {
		call.IDs = append(call.IDs, el.ID())
	}

	a.mu.Lock()
	a.calls = append(a.calls, call)
	hook := a.hook
	a.mu.Unlock()

	if hook != nil {
		return hook(ctx, call)
	}
	return nil
}

func (a *Animator) Calls() []AnimatorCall {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]AnimatorCall, len(a.calls))
	copy(out, a.calls)
	return out
}

// Enters returns the recorded enter calls.
func (a *Animator) Enters() []AnimatorCall {
	var out []AnimatorCall
	for _, c := range a.Calls() {
		if c.Enter {
			out = append(out, c)
		}
	}
	return out
}
