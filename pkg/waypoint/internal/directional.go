package internal

import (
	"time"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
)

// Direction is a relative move through the navigation index.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionPrevious
	DirectionNext
)

// DirectionalInput tracks held directions and handles repeat timing.
// Input sources call Press/Release as keys change and Update once per tick.
type DirectionalInput struct {
	held struct {
		previous, next bool
	}
	lastRepeatTime time.Time
	repeatDelay    time.Duration
	repeatInterval time.Duration
	hasRepeated    bool
	now            func() time.Time
}

// NewDirectionalInput creates a DirectionalInput with default timing.
func NewDirectionalInput() DirectionalInput {
	return NewDirectionalInputWithTiming(constants.DefaultRepeatDelay, constants.DefaultRepeatInterval)
}

// NewDirectionalInputWithTiming creates a DirectionalInput with custom timing.
func NewDirectionalInputWithTiming(delay, interval time.Duration) DirectionalInput {
	return DirectionalInput{
		repeatDelay:    delay,
		repeatInterval: interval,
		lastRepeatTime: time.Now(),
		now:            time.Now,
	}
}

// SetClock replaces the time source. Tests use it to step time.
func (d *DirectionalInput) SetClock(now func() time.Time) {
	d.now = now
	d.lastRepeatTime = now()
}

// SetHeld updates the held state of a direction. Pressing restarts the
// repeat delay.
func (d *DirectionalInput) SetHeld(dir Direction, held bool) {
	switch dir {
	case DirectionPrevious:
		d.held.previous = held
	case DirectionNext:
		d.held.next = held
	default:
		return
	}
	d.hasRepeated = false
	d.lastRepeatTime = d.now()
}

// IsHeld returns true if any direction is currently held.
func (d *DirectionalInput) IsHeld() bool {
	return d.held.previous || d.held.next
}

// HeldDirection returns the currently held direction. Previous wins when
// both are held.
func (d *DirectionalInput) HeldDirection() Direction {
	if d.held.previous {
		return DirectionPrevious
	}
	if d.held.next {
		return DirectionNext
	}
	return DirectionNone
}

// Update returns the direction to repeat, or DirectionNone when no repeat
// is due. The first repeat occurs after the delay, later ones after the
// interval.
func (d *DirectionalInput) Update() Direction {
	now := d.now()
	if !d.IsHeld() {
		d.lastRepeatTime = now
		d.hasRepeated = false
		return DirectionNone
	}

	threshold := d.repeatInterval
	if !d.hasRepeated {
		threshold = d.repeatDelay
	}

	if now.Sub(d.lastRepeatTime) >= threshold {
		d.lastRepeatTime = now
		d.hasRepeated = true
		return d.HeldDirection()
	}
	return DirectionNone
}

// Reset clears all held directions and timing state.
func (d *DirectionalInput) Reset() {
	d.held.previous = false
	d.held.next = false
	d.hasRepeated = false
	d.lastRepeatTime = d.now()
}

// Delta returns the index step for the direction.
func (dir Direction) Delta() int {
	switch dir {
	case DirectionPrevious:
		return -1
	case DirectionNext:
		return 1
	default:
		return 0
	}
}

func (dir Direction) String() string {
	switch dir {
	case DirectionPrevious:
		return "previous"
	case DirectionNext:
		return "next"
	default:
		return ""
	}
}
