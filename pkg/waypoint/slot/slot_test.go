package slot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal/fakes"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view/memview"
)

func TestBeginPendingReplacesExistingPending(t *testing.T) {
	container := memview.New("page")
	s := New("page", container)

	first, err := s.BeginPending("a")
	require.NoError(t, err)
	second, err := s.BeginPending("b")
	require.NoError(t, err)

	assert.Same(t, second, s.Pending())
	assert.True(t, first.Element.(*memview.Element).Removed())
	assert.Len(t, container.Children(), 1)
	assert.False(t, second.Element.(*memview.Element).Visible())
}

func TestCommitReturnsPreviousWithoutDestroyingIt(t *testing.T) {
	container := memview.New("page")
	s := New("page", container)

	a, _ := s.BeginPending("a")
	require.True(t, s.Attach(a, fakes.NewRoot("a", a.Element)))
	prev, err := s.Commit(a)
	require.NoError(t, err)
	assert.Nil(t, prev)

	b, _ := s.BeginPending("b")
	rootB := fakes.NewRoot("b", b.Element)
	require.True(t, s.Attach(b, rootB))
	prev, err = s.Commit(b)
	require.NoError(t, err)

	assert.Same(t, a, prev)
	assert.False(t, a.Element.(*memview.Element).Removed())
	assert.Equal(t, "b", s.CurrentDestination())
	assert.Nil(t, s.Pending())

	s.Destroy(prev)
	s.Destroy(prev)
	assert.True(t, a.Element.(*memview.Element).Removed())
	assert.True(t, a.Root.(*fakes.Root).Disposed())
	assert.False(t, rootB.Disposed())
}

func TestCommitRejectsStaleContent(t *testing.T) {
	s := New("page", memview.New("page"))

	stale, _ := s.BeginPending("a")
	_, _ = s.BeginPending("b")

	_, err := s.Commit(stale)
	assert.ErrorIs(t, err, ErrNotPending)
	assert.Nil(t, s.Current())
}

func TestAttachDisposesRootOfDiscardedContent(t *testing.T) {
	s := New("page", memview.New("page"))

	c, _ := s.BeginPending("a")
	s.Discard(c)

	root := fakes.NewRoot("a", c.Element)
	assert.False(t, s.Attach(c, root))
	assert.True(t, root.Disposed())
	assert.Nil(t, s.Pending())
}

func TestResetDestroysCurrentAndPending(t *testing.T) {
	container := memview.New("page")
	s := New("page", container)

	a, _ := s.BeginPending("a")
	_, _ = s.Commit(a)
	_, _ = s.BeginPending("b")

	s.Reset()

	assert.Nil(t, s.Current())
	assert.Nil(t, s.Pending())
	assert.Empty(t, container.Children())
}

func TestBuildErrorUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := error(&BuildError{Destination: "a", Op: "render", Err: cause})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "build a: render: boom", err.Error())
}
