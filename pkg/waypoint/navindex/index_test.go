package navindex

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal/fakes"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sampleItems() []Item {
	return []Item{
		{ID: "a", Group: 1, Label: "A"},
		{ID: "b", Group: 1, Label: "B"},
		{ID: "c", Group: 2, Label: "C"},
		{ID: "d", Group: 2, Label: "D", Disabled: true},
		{ID: "e", Group: 2, Label: "E"},
	}
}

func visibleCount(x *Index) int {
	n := 0
	for _, o := range []view.Orientation{view.Horizontal, view.Vertical} {
		if x.Widget(o).Visible {
			n++
		}
	}
	return n
}

func TestNewActivatesFirstGroup(t *testing.T) {
	x := New(sampleItems(), Options{})

	assert.Equal(t, 1, x.ActiveGroup())
	assert.Equal(t, view.Horizontal, x.Orientation())
	assert.True(t, x.Shown())

	h := x.Widget(view.Horizontal)
	assert.True(t, h.Visible)
	assert.True(t, h.HitTestable)
	assert.Len(t, h.Items, 2)

	v := x.Widget(view.Vertical)
	assert.False(t, v.Visible)
	assert.False(t, v.HitTestable)
}

func TestEmptyIndexIsHidden(t *testing.T) {
	x := New(nil, Options{})

	assert.True(t, x.Empty())
	assert.Equal(t, 0, visibleCount(x))
}

func TestSyncSelectsItemAndGroup(t *testing.T) {
	x := New(sampleItems(), Options{})

	x.Sync("c")
	assert.Equal(t, "c", x.Selected())
	assert.Equal(t, 2, x.ActiveGroup())
	assert.Equal(t, "c", x.Widget(view.Horizontal).Selected)

	x.Sync("settings")
	assert.Empty(t, x.Selected())
	assert.Equal(t, 2, x.ActiveGroup())
}

func TestPositionAndGroup(t *testing.T) {
	x := New(sampleItems(), Options{})

	pos, ok := x.Position("c")
	require.True(t, ok)
	assert.Equal(t, 2, pos)

	g, ok := x.Group("e")
	require.True(t, ok)
	assert.Equal(t, 2, g)

	_, ok = x.Position("missing")
	assert.False(t, ok)
}

func TestNextSkipsDisabled(t *testing.T) {
	x := New(sampleItems(), Options{})

	next, ok := x.Next("c", 1)
	require.True(t, ok)
	assert.Equal(t, "e", next)

	prev, ok := x.Next("e", -1)
	require.True(t, ok)
	assert.Equal(t, "c", prev)

	_, ok = x.Next("e", 1)
	assert.False(t, ok)

	first, ok := x.Next("", 1)
	require.True(t, ok)
	assert.Equal(t, "a", first)
}

func TestSetLabelsUpdatesWidget(t *testing.T) {
	x := New(sampleItems(), Options{})

	x.SetLabels(map[string]string{"a": "Accueil", "zzz": "ignored"})

	items := x.Widget(view.Horizontal).Items
	assert.Equal(t, "Accueil", items[0].Label)
	assert.Equal(t, "B", items[1].Label)
}

func TestSetItemsKeepsSurvivingSelection(t *testing.T) {
	x := New(sampleItems(), Options{})
	x.Sync("b")

	x.SetItems([]Item{{ID: "b", Group: 3}, {ID: "z", Group: 3}})
	assert.Equal(t, "b", x.Selected())
	assert.Equal(t, 3, x.ActiveGroup())

	x.SetItems([]Item{{ID: "z", Group: 3}})
	assert.Empty(t, x.Selected())

	x.SetItems(nil)
	assert.Equal(t, 0, visibleCount(x))
}

func TestSetOrientationSwapsWidgets(t *testing.T) {
	anim := &fakes.Animator{}
	x := New(sampleItems(), Options{Animator: anim})
	x.SetBounds(view.Rect{W: 800, H: 48})

	require.NoError(t, x.SetOrientation(context.Background(), view.Vertical))

	assert.Equal(t, view.Vertical, x.Orientation())
	assert.False(t, x.Widget(view.Horizontal).Visible)
	v := x.Widget(view.Vertical)
	assert.True(t, v.Visible)
	assert.Len(t, v.Items, 2)
	assert.Equal(t, view.Rect{W: 800, H: 48}, v.Bounds)

	calls := anim.Calls()
	require.Len(t, calls, 2)
	assert.False(t, calls[0].Enter)
	assert.Equal(t, []string{"navindex-horizontal"}, calls[0].IDs)
	assert.True(t, calls[1].Enter)
	assert.Equal(t, []string{"navindex-vertical"}, calls[1].IDs)

	require.NoError(t, x.SetOrientation(context.Background(), view.Vertical))
	assert.Len(t, anim.Calls(), 2)
}

func TestOverlappingOrientationChanges(t *testing.T) {
	anim := &fakes.Animator{}
	x := New(sampleItems(), Options{Animator: anim, RetryInterval: time.Millisecond})

	release := make(chan struct{})
	exitStarted := make(chan struct{})
	var blocked atomic.Bool
	var overlap atomic.Bool
	anim.SetHook(func(ctx context.Context, call fakes.AnimatorCall) error {
		if visibleCount(x) > 1 {
			overlap.Store(true)
		}
		if !call.Enter && blocked.CompareAndSwap(false, true) {
			close(exitStarted)
			<-release
		}
		return nil
	})

	done := make(chan error, 1)
	go func() {
		done <- x.SetOrientation(context.Background(), view.Vertical)
	}()
	<-exitStarted

	require.NoError(t, x.SetOrientation(context.Background(), view.Vertical))
	require.NoError(t, x.SetOrientation(context.Background(), view.Horizontal))
	assert.True(t, x.Changing())
	assert.Equal(t, 1, visibleCount(x))

	close(release)
	require.NoError(t, <-done)

	assert.False(t, x.Changing())
	assert.False(t, overlap.Load())
	assert.Equal(t, view.Horizontal, x.Orientation())
	assert.Equal(t, 1, visibleCount(x))
	assert.True(t, x.Widget(view.Horizontal).Visible)
}

func TestOrientationChangeAbortsOnCancel(t *testing.T) {
	anim := &fakes.Animator{}
	x := New(sampleItems(), Options{Animator: anim, RetryInterval: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	exitStarted := make(chan struct{})
	release := make(chan struct{})
	var blocked atomic.Bool
	anim.SetHook(func(ctx context.Context, call fakes.AnimatorCall) error {
		if !call.Enter && blocked.CompareAndSwap(false, true) {
			close(exitStarted)
			<-release
		}
		return nil
	})

	done := make(chan error, 1)
	go func() {
		done <- x.SetOrientation(ctx, view.Vertical)
	}()
	<-exitStarted
	require.NoError(t, x.SetOrientation(ctx, view.Horizontal))
	close(release)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.False(t, x.Changing())
	assert.Equal(t, 1, visibleCount(x))
}

func TestPendingOrientationSurvivesFirstCallerCancel(t *testing.T) {
	anim := &fakes.Animator{}
	x := New(sampleItems(), Options{Animator: anim, RetryInterval: time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	exitStarted := make(chan struct{})
	release := make(chan struct{})
	var blocked atomic.Bool
	anim.SetHook(func(ctx context.Context, call fakes.AnimatorCall) error {
		if !call.Enter && blocked.CompareAndSwap(false, true) {
			close(exitStarted)
			<-release
		}
		return nil
	})

	done := make(chan error, 1)
	go func() {
		done <- x.SetOrientation(ctx, view.Vertical)
	}()
	<-exitStarted

	require.NoError(t, x.SetOrientation(context.Background(), view.Horizontal))
	cancel()
	close(release)
	require.NoError(t, <-done)

	assert.False(t, x.Changing())
	assert.Equal(t, view.Horizontal, x.Orientation())
	assert.Equal(t, 1, visibleCount(x))
	assert.True(t, x.Widget(view.Horizontal).Visible)
}

func TestCancelledPendingOrientationIsDropped(t *testing.T) {
	anim := &fakes.Animator{}
	x := New(sampleItems(), Options{Animator: anim, RetryInterval: time.Hour})

	exitStarted := make(chan struct{})
	release := make(chan struct{})
	var blocked atomic.Bool
	anim.SetHook(func(ctx context.Context, call fakes.AnimatorCall) error {
		if !call.Enter && blocked.CompareAndSwap(false, true) {
			close(exitStarted)
			<-release
		}
		return nil
	})

	done := make(chan error, 1)
	go func() {
		done <- x.SetOrientation(context.Background(), view.Vertical)
	}()
	<-exitStarted

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, x.SetOrientation(ctx, view.Horizontal))
	cancel()
	close(release)
	require.NoError(t, <-done)

	assert.False(t, x.Changing())
	assert.Equal(t, view.Vertical, x.Orientation())
	assert.Equal(t, 1, visibleCount(x))
}

func TestGroupChangeDeferredWhileExiting(t *testing.T) {
	anim := &fakes.Animator{}
	x := New(sampleItems(), Options{Animator: anim})

	exitStarted := make(chan struct{})
	release := make(chan struct{})
	anim.SetHook(func(ctx context.Context, call fakes.AnimatorCall) error {
		if !call.Enter {
			close(exitStarted)
			<-release
		}
		return nil
	})

	done := make(chan error, 1)
	go func() {
		done <- x.Hide(context.Background())
	}()
	<-exitStarted

	x.SetItemsForGroup(2)
	assert.Equal(t, 1, x.ActiveGroup())
	assert.Len(t, x.Widget(view.Horizontal).Items, 2)

	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, 2, x.ActiveGroup())
	assert.False(t, x.Shown())
	assert.Equal(t, 0, visibleCount(x))

	anim.SetHook(nil)
	require.NoError(t, x.Show(context.Background()))
	assert.True(t, x.Shown())
	assert.Equal(t, []string{"c", "d", "e"}, ids(x.Widget(view.Horizontal).Items))
}

func TestIconRasterizesItemIcon(t *testing.T) {
	items := []Item{{ID: "home", Group: 1, Icon: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 4 4"><rect width="4" height="4" fill="#000"/></svg>`}}
	x := New(items, Options{})

	img, err := x.Icon("home", 12)
	require.NoError(t, err)
	assert.Equal(t, 12, img.Bounds().Dx())

	_, err = x.Icon("missing", 12)
	assert.Error(t, err)
}

func ids(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}
