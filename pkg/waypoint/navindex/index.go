// Package navindex implements the secondary navigation index: an ordered set
// of grouped items shown in one of two physical list widgets, one per
// orientation. Exactly one widget is active at a time; the other is fully
// hidden and not hit-testable.
package navindex

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/icon"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

// Item is one entry of the index. Items are kept in display order.
type Item struct {
	ID           string // Destination the item navigates to
	Group        int    // Group number; groups are ordered by number
	Disabled     bool   // Disabled items are shown but skipped by Next
	DisplayWidth int    // Preferred width in pixels in horizontal orientation
	Label        string // Display text
	Icon         string // Optional SVG source
}

type orientationState int

const (
	stateIdle orientationState = iota
	stateChanging
)

// orientationRequest is a deferred orientation change and the context of
// the caller that asked for it.
type orientationRequest struct {
	ctx context.Context
	o   view.Orientation
}

// Options configures an Index.
type Options struct {
	Orientation   view.Orientation
	RetryInterval time.Duration // Yield before draining a deferred orientation change
	Animator      view.Animator
	Icons         *icon.Cache
	Logger        *slog.Logger
}

// Index is the secondary navigation index state machine.
type Index struct {
	animator view.Animator
	retry    time.Duration
	icons    *icon.Cache
	logger   *slog.Logger

	mu          sync.Mutex
	items       []Item
	activeGroup int
	selected    string
	orientation view.Orientation
	state       orientationState
	pending     *orientationRequest
	widgets     [2]*ListWidget

	shown         bool
	exiting       bool
	deferredGroup *int
}

// New creates an index over items. The widget for opts.Orientation starts
// active, and visible when there is at least one item.
func New(items []Item, opts Options) *Index {
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = constants.DefaultOrientationRetry
	}
	if opts.Animator == nil {
		opts.Animator = view.NoAnimation{}
	}
	if opts.Icons == nil {
		opts.Icons = icon.NewCache()
	}

	x := &Index{
		animator:    opts.Animator,
		retry:       opts.RetryInterval,
		icons:       opts.Icons,
		logger:      internal.OrDefault(opts.Logger, "navindex"),
		orientation: opts.Orientation,
		widgets: [2]*ListWidget{
			newListWidget(view.Horizontal),
			newListWidget(view.Vertical),
		},
	}
	x.items = cloneItems(items)
	if len(x.items) > 0 {
		x.activeGroup = x.items[0].Group
		x.shown = true
	}
	x.applyGroupLocked(x.activeGroup)
	x.active().show(x.shown)
	return x
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

func (x *Index) active() *ListWidget {
	return x.widgets[x.orientation]
}

// SetItems replaces the item sequence, keeping the selection if its item
// survives.
func (x *Index) SetItems(items []Item) {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.items = cloneItems(items)
	if _, ok := x.positionLocked(x.selected); !ok {
		x.selected = ""
	}
	if len(x.items) == 0 {
		x.active().show(false)
		x.shown = false
		x.applyGroupLocked(0)
		return
	}
	if !x.hasGroupLocked(x.activeGroup) {
		x.activeGroup = x.items[0].Group
	}
	x.applyGroupLocked(x.activeGroup)
	if !x.shown && !x.exiting {
		x.shown = true
		x.active().show(true)
	}
}

// SetLabels replaces item labels by id. Unknown ids are ignored.
func (x *Index) SetLabels(labels map[string]string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	for i := range x.items {
		if label, ok := labels[x.items[i].ID]; ok {
			x.items[i].Label = label
		}
	}
	x.applyGroupLocked(x.activeGroup)
}

// Items returns a copy of the item sequence.
func (x *Index) Items() []Item {
	x.mu.Lock()
	defer x.mu.Unlock()
	return cloneItems(x.items)
}

func (x *Index) Len() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.items)
}

// Empty reports whether the index has no items.
func (x *Index) Empty() bool {
	return x.Len() == 0
}

// Position returns the display position of the item for id.
func (x *Index) Position(id string) (int, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.positionLocked(id)
}

func (x *Index) positionLocked(id string) (int, bool) {
	if id == "" {
		return -1, false
	}
	for i, it := range x.items {
		if it.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Group returns the group number of the item for id.
func (x *Index) Group(id string) (int, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if i, ok := x.positionLocked(id); ok {
		return x.items[i].Group, true
	}
	return 0, false
}

func (x *Index) hasGroupLocked(group int) bool {
	for _, it := range x.items {
		if it.Group == group {
			return true
		}
	}
	return false
}

func (x *Index) Orientation() view.Orientation {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.orientation
}

func (x *Index) ActiveGroup() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.activeGroup
}

func (x *Index) Selected() string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.selected
}

// Shown reports whether the index container is visible.
func (x *Index) Shown() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.shown
}

// Changing reports whether an orientation change is in progress.
func (x *Index) Changing() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.state == stateChanging
}

// Widget returns a snapshot of the list widget for orientation o.
func (x *Index) Widget(o view.Orientation) WidgetState {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.widgets[o].snapshot()
}

// SetBounds places the active widget.
func (x *Index) SetBounds(r view.Rect) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.active().SetBounds(r)
}

// Sync selects the item for destination and activates its group. A
// destination with no item clears the selection and keeps the group.
func (x *Index) Sync(destination string) {
	x.mu.Lock()
	i, ok := x.positionLocked(destination)
	if !ok {
		x.selected = ""
		x.active().selectItem("")
		x.mu.Unlock()
		return
	}
	x.selected = destination
	group := x.items[i].Group
	x.mu.Unlock()

	x.SetItemsForGroup(group)
}

// SetItemsForGroup shows the items of group in the active widget. While the
// index container is exiting, the change is deferred until the exit
// completes so the content does not visibly swap mid-animation.
func (x *Index) SetItemsForGroup(group int) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.exiting {
		g := group
		x.deferredGroup = &g
		x.logger.Debug("Deferring group change until exit completes", "group", group)
		return
	}
	x.applyGroupLocked(group)
}

func (x *Index) applyGroupLocked(group int) {
	x.activeGroup = group
	var items []Item
	for _, it := range x.items {
		if it.Group == group {
			items = append(items, it)
		}
	}
	w := x.active()
	w.setItems(items)
	w.selectItem(x.selected)
}

// Next returns the nearest enabled item delta steps away from id in display
// order, skipping disabled items. From an unknown id it starts at the first
// (delta > 0) or last (delta < 0) item.
func (x *Index) Next(id string, delta int) (string, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	n := len(x.items)
	if n == 0 || delta == 0 {
		return "", false
	}

	pos, ok := x.positionLocked(id)
	if !ok {
		if delta > 0 {
			pos = -1
		} else {
			pos = n
		}
	}

	step := 1
	if delta < 0 {
		step = -1
		delta = -delta
	}
	for i := pos + step; i >= 0 && i < n; i += step {
		if x.items[i].Disabled {
			continue
		}
		delta--
		if delta == 0 {
			return x.items[i].ID, true
		}
	}
	return "", false
}

// Icon rasterizes the icon of the item for id at size×size pixels.
func (x *Index) Icon(id string, size int) (image.Image, error) {
	x.mu.Lock()
	i, ok := x.positionLocked(id)
	var svg string
	if ok {
		svg = x.items[i].Icon
	}
	x.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("navindex: no item %q", id)
	}
	return x.icons.Rasterize(id, svg, size)
}

// Hide runs the exit animation of the index container and hides it.
// Group changes requested meanwhile are applied once the exit completes.
func (x *Index) Hide(ctx context.Context) error {
	x.mu.Lock()
	if !x.shown || x.exiting {
		x.mu.Unlock()
		return nil
	}
	x.exiting = true
	w := x.active()
	x.mu.Unlock()

	if err := x.animator.AnimateExit(ctx, []view.Element{w}, view.Motion{}); err != nil {
		x.logger.Warn("Index exit animation failed", "error", err)
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	w.show(false)
	x.shown = false
	x.exiting = false
	if x.deferredGroup != nil {
		x.applyGroupLocked(*x.deferredGroup)
		x.deferredGroup = nil
	}
	return ctx.Err()
}

// Show makes the index container visible again and runs its enter animation.
func (x *Index) Show(ctx context.Context) error {
	x.mu.Lock()
	if x.shown || x.exiting || len(x.items) == 0 {
		x.mu.Unlock()
		return nil
	}
	x.shown = true
	w := x.active()
	w.show(true)
	x.mu.Unlock()

	if err := x.animator.AnimateEnter(ctx, []view.Element{w}, view.Motion{}); err != nil {
		x.logger.Warn("Index enter animation failed", "error", err)
	}
	return nil
}
