package navindex

import (
	"sync"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

// ListWidget is one of the two physical lists of the index. It implements
// view.Element so the animator and the host can place it.
type ListWidget struct {
	orientation view.Orientation

	mu          sync.Mutex
	visible     bool
	hitTestable bool
	bounds      view.Rect
	items       []Item
	selected    string
	content     any
}

// WidgetState is a point-in-time copy of a ListWidget.
type WidgetState struct {
	Orientation view.Orientation
	Visible     bool
	HitTestable bool
	Bounds      view.Rect
	Items       []Item
	Selected    string
}

func newListWidget(o view.Orientation) *ListWidget {
	return &ListWidget{orientation: o}
}

func (w *ListWidget) ID() string {
	return "navindex-" + w.orientation.String()
}

func (w *ListWidget) SetVisible(visible bool) {
	w.show(visible)
}

func (w *ListWidget) SetBounds(r view.Rect) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.bounds = r
}

func (w *ListWidget) Mount(content any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.content = content
}

// show toggles visibility; a hidden widget has no hit-testable area.
func (w *ListWidget) show(visible bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visible = visible
	w.hitTestable = visible
}

func (w *ListWidget) setItems(items []Item) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = items
}

func (w *ListWidget) selectItem(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selected = ""
	for _, it := range w.items {
		if it.ID == id {
			w.selected = id
			return
		}
	}
}

func (w *ListWidget) snapshot() WidgetState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return WidgetState{
		Orientation: w.orientation,
		Visible:     w.visible,
		HitTestable: w.hitTestable,
		Bounds:      w.bounds,
		Items:       cloneItems(w.items),
		Selected:    w.selected,
	}
}
