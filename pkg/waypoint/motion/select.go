// Package motion picks the animation class for a page transition from the
// positions of the previous and next destinations in the navigation index.
package motion

import (
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

// IndexReader is the read side of the navigation index used for selection.
type IndexReader interface {
	Empty() bool
	Orientation() view.Orientation
	Position(id string) (int, bool)
	Group(id string) (int, bool)
}

// Select returns the motion for a transition from prev to cur.
//
// The checks run in a fixed order: a missing or non-horizontal index, an
// unresolvable position or the home destination yield a neutral page
// motion; otherwise a group change yields a continuum motion; otherwise an
// item slide along the index axis.
func Select(index IndexReader, prev, cur, home string) view.Motion {
	neutral := view.Motion{Kind: view.MotionPage}

	if index == nil || index.Empty() || index.Orientation() != view.Horizontal {
		return neutral
	}
	prevIndex, okPrev := index.Position(prev)
	curIndex, okCur := index.Position(cur)
	if !okPrev || !okCur || cur == home {
		return neutral
	}

	prevGroup, _ := index.Group(prev)
	curGroup, _ := index.Group(cur)
	if curGroup != prevGroup {
		return view.Motion{Kind: view.MotionContinuum, Direction: direction(prevGroup < curGroup)}
	}

	dir := direction(prevIndex < curIndex)
	return view.Motion{
		Kind:      view.MotionSlide,
		Direction: dir,
		Offset:    slideOffset(index.Orientation(), dir),
	}
}

func direction(forward bool) view.MotionDirection {
	if forward {
		return view.DirectionForward
	}
	return view.DirectionBackward
}

// slideOffset maps forward and backward to opposite translations along the
// index axis. New content enters from the far side when moving forward.
func slideOffset(o view.Orientation, dir view.MotionDirection) view.Offset {
	d := constants.SlideOffset
	if dir == view.DirectionBackward {
		d = -d
	}
	if o == view.Horizontal {
		return view.Offset{X: d}
	}
	return view.Offset{Y: d}
}
