package memview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

func TestCreateChildStartsHidden(t *testing.T) {
	root := New("page")

	child, err := root.CreateChild("page-1")
	require.NoError(t, err)

	assert.False(t, child.(*Element).Visible())
	assert.Len(t, root.Children(), 1)
}

func TestCreateChildRejectsDuplicates(t *testing.T) {
	root := New("page")
	_, err := root.CreateChild("a")
	require.NoError(t, err)

	_, err = root.CreateChild("a")
	assert.Error(t, err)
}

func TestRemoveChildIsIdempotent(t *testing.T) {
	root := New("page")
	child, err := root.CreateChild("a")
	require.NoError(t, err)

	root.RemoveChild(child)
	root.RemoveChild(child)

	assert.Empty(t, root.Children())
	assert.True(t, child.(*Element).Removed())

	_, err = child.(*Element).CreateChild("nested")
	assert.Error(t, err)
}

func TestHostFindsDescendant(t *testing.T) {
	root := New("page")
	child, _ := root.CreateChild("body")
	_, _ = child.(*Element).CreateChild("sidebar")

	host, ok := root.Host("sidebar")
	require.True(t, ok)
	assert.Equal(t, "sidebar", host.ID())

	_, ok = root.Host("missing")
	assert.False(t, ok)
}

func TestVisibleChildren(t *testing.T) {
	root := New("page")
	a, _ := root.CreateChild("a")
	_, _ = root.CreateChild("b")
	a.SetVisible(true)
	a.SetBounds(view.Rect{W: 10, H: 10})

	assert.Equal(t, []string{"a"}, root.VisibleChildren())
	assert.Equal(t, view.Rect{W: 10, H: 10}, a.(*Element).Bounds())
}
