// Package slot implements the container that holds the current and,
// during a transition, the pending content of one view region.
package slot

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

// ErrNotPending is returned by Commit for content that is no longer the
// slot's pending content.
var ErrNotPending = errors.New("slot: content is not pending")

// ErrNoContent is the cause of a BuildError for a renderer that returned
// neither a root nor an error.
var ErrNoContent = errors.New("renderer returned no content")

// BuildError reports content that could not be rendered.
type BuildError struct {
	Destination string
	Op          string // "create", "render"
	Err         error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build %s: %s: %v", e.Destination, e.Op, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Content is one rendered version of a slot's view.
type Content struct {
	Destination string
	Element     view.Element
	Root        view.Root

	destroyOnce sync.Once
}

// Roots collects the non-nil roots of contents.
func Roots(contents ...*Content) []view.Root {
	roots := make([]view.Root, 0, len(contents))
	for _, c := range contents {
		if c != nil && c.Root != nil {
			roots = append(roots, c.Root)
		}
	}
	return roots
}

// Elements collects the elements of non-nil contents.
func Elements(contents ...*Content) []view.Element {
	elems := make([]view.Element, 0, len(contents))
	for _, c := range contents {
		if c != nil && c.Element != nil {
			elems = append(elems, c.Element)
		}
	}
	return elems
}

// Slot owns a container element and at most one current and one pending
// Content. Previous content is never destroyed by Commit itself; the caller
// destroys it once its exit animation is over.
type Slot struct {
	name      string
	container view.Container
	seq       atomic.Uint64

	mu      sync.Mutex
	current *Content
	pending *Content
}

// New creates an empty slot over container.
func New(name string, container view.Container) *Slot {
	return &Slot{name: name, container: container}
}

func (s *Slot) Name() string { return s.name }

func (s *Slot) Container() view.Container { return s.container }

// Current returns the committed content, or nil.
func (s *Slot) Current() *Content {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Pending returns the in-flight content, or nil.
func (s *Slot) Pending() *Content {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// CurrentDestination returns the destination of the committed content.
func (s *Slot) CurrentDestination() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.Destination
}

// BeginPending discards any existing pending content and creates a new,
// hidden child element to build destination into.
func (s *Slot) BeginPending(destination string) (*Content, error) {
	id := fmt.Sprintf("%s-%d", s.name, s.seq.Inc())
	el, err := s.container.CreateChild(id)
	if err != nil {
		return nil, &BuildError{Destination: destination, Op: "create", Err: err}
	}
	el.SetVisible(false)

	c := &Content{Destination: destination, Element: el}

	s.mu.Lock()
	stale := s.pending
	s.pending = c
	s.mu.Unlock()

	if stale != nil {
		s.Destroy(stale)
	}
	return c, nil
}

// Attach records the rendered root on pending content. If c has been
// discarded meanwhile the root is disposed and false is returned.
func (s *Slot) Attach(c *Content, root view.Root) bool {
	s.mu.Lock()
	ok := s.pending == c
	if ok {
		c.Root = root
	}
	s.mu.Unlock()

	if !ok {
		if d, isDisposer := root.(view.Disposer); isDisposer {
			d.Dispose()
		}
	}
	return ok
}

// Discard drops c if it is still pending and destroys it either way.
func (s *Slot) Discard(c *Content) {
	if c == nil {
		return
	}
	s.mu.Lock()
	if s.pending == c {
		s.pending = nil
	}
	s.mu.Unlock()
	s.Destroy(c)
}

// Commit promotes pending content c to current and returns the previous
// current content, which the caller must Destroy.
func (s *Slot) Commit(c *Content) (*Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != c {
		return nil, ErrNotPending
	}
	prev := s.current
	s.current = c
	s.pending = nil
	return prev, nil
}

// Clear empties the slot and returns the previous current content,
// which the caller must Destroy.
func (s *Slot) Clear() *Content {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.current
	s.current = nil
	return prev
}

// Reset empties the slot, including pending content, and destroys both.
func (s *Slot) Reset() {
	s.mu.Lock()
	cur, pend := s.current, s.pending
	s.current, s.pending = nil, nil
	s.mu.Unlock()

	s.Destroy(pend)
	s.Destroy(cur)
}

// Destroy removes c's element from the container and disposes its root.
// Destroying the same content twice is a no-op.
func (s *Slot) Destroy(c *Content) {
	if c == nil {
		return
	}
	c.destroyOnce.Do(func() {
		if c.Element != nil {
			s.container.RemoveChild(c.Element)
		}
		if d, ok := c.Root.(view.Disposer); ok {
			d.Dispose()
		}
	})
}
