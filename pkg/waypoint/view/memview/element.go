// Package memview is an in-memory element tree implementing the view
// contracts. It backs the demo host and the tests; nothing is drawn.
package memview

import (
	"fmt"
	"sync"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

// Element is a node of the in-memory tree. It implements view.Container and
// view.HostProvider.
type Element struct {
	mu       sync.Mutex
	id       string
	visible  bool
	bounds   view.Rect
	offset   view.Offset
	content  any
	parent   *Element
	children []*Element
	removed  bool
}

// New creates a visible, detached root element.
func New(id string) *Element {
	return &Element{id: id, visible: true}
}

func (e *Element) ID() string { return e.id }

func (e *Element) SetVisible(visible bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.visible = visible
}

func (e *Element) SetBounds(r view.Rect) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bounds = r
}

// SetOffset records an animation translation.
func (e *Element) SetOffset(o view.Offset) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.offset = o
}

func (e *Element) Mount(content any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.content = content
}

// CreateChild appends a hidden child element. IDs must be unique among
// live siblings.
func (e *Element) CreateChild(id string) (view.Element, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return nil, fmt.Errorf("memview: %s: parent removed", e.id)
	}
	for _, c := range e.children {
		if c.id == id {
			return nil, fmt.Errorf("memview: %s: duplicate child %q", e.id, id)
		}
	}
	child := &Element{id: id, parent: e}
	e.children = append(e.children, child)
	return child, nil
}

// RemoveChild detaches child. Removing an element twice is a no-op.
func (e *Element) RemoveChild(child view.Element) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, c := range e.children {
		if view.Element(c) == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			c.markRemoved()
			return
		}
	}
}

func (e *Element) markRemoved() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.removed = true
	e.visible = false
}

// Host finds a descendant by id, the element itself included.
func (e *Element) Host(id string) (view.Container, bool) {
	if e.id == id {
		return e, true
	}
	for _, c := range e.Children() {
		if found, ok := c.Host(id); ok {
			return found, true
		}
	}
	return nil, false
}

func (e *Element) Visible() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.visible
}

func (e *Element) Bounds() view.Rect {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bounds
}

func (e *Element) Offset() view.Offset {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.offset
}

func (e *Element) Content() any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.content
}

// Removed reports whether the element was detached from its parent.
func (e *Element) Removed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.removed
}

// Children returns a snapshot of the live children.
func (e *Element) Children() []*Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// VisibleChildren returns the ids of children currently visible.
func (e *Element) VisibleChildren() []string {
	var ids []string
	for _, c := range e.Children() {
		if c.Visible() {
			ids = append(ids, c.id)
		}
	}
	return ids
}
