package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/navindex"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

// stubIndex lets the non-horizontal branch be exercised without running an
// orientation change.
type stubIndex struct {
	*navindex.Index
	orientation view.Orientation
}

func (s stubIndex) Orientation() view.Orientation { return s.orientation }

func abc() *navindex.Index {
	return navindex.New([]navindex.Item{
		{ID: "A", Group: 1},
		{ID: "B", Group: 1},
		{ID: "C", Group: 2},
	}, navindex.Options{Orientation: view.Horizontal})
}

func TestGroupJumpBeatsItemMove(t *testing.T) {
	got := Select(abc(), "A", "C", "home")

	assert.Equal(t, view.MotionContinuum, got.Kind)
	assert.Equal(t, view.DirectionForward, got.Direction)
	assert.Equal(t, view.Offset{}, got.Offset)
}

func TestContinuumBackward(t *testing.T) {
	got := Select(abc(), "C", "A", "home")

	assert.Equal(t, view.MotionContinuum, got.Kind)
	assert.Equal(t, view.DirectionBackward, got.Direction)
}

func TestItemSlide(t *testing.T) {
	idx := abc()

	fwd := Select(idx, "A", "B", "home")
	assert.Equal(t, view.MotionSlide, fwd.Kind)
	assert.Equal(t, view.DirectionForward, fwd.Direction)

	back := Select(idx, "B", "A", "home")
	assert.Equal(t, view.DirectionBackward, back.Direction)
	assert.Equal(t, fwd.Offset, back.Offset.Negate())
	assert.NotZero(t, fwd.Offset.X)
	assert.Zero(t, fwd.Offset.Y)
}

func TestNeutralCases(t *testing.T) {
	idx := abc()
	tests := []struct {
		name  string
		index IndexReader
		prev  string
		cur   string
	}{
		{"no index", nil, "A", "B"},
		{"empty index", navindex.New(nil, navindex.Options{}), "A", "B"},
		{"vertical index", stubIndex{Index: idx, orientation: view.Vertical}, "A", "C"},
		{"unknown previous", idx, "settings", "B"},
		{"unknown current", idx, "A", "settings"},
		{"home destination", idx, "B", "A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := "home"
			if tt.name == "home destination" {
				home = "A"
			}
			got := Select(tt.index, tt.prev, tt.cur, home)
			assert.Equal(t, view.Motion{Kind: view.MotionPage}, got)
		})
	}
}
