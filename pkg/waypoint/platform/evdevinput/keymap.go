// Package evdevinput drives navigation from a Linux input device: directional
// keys step through the navigation index and the back key walks the history.
package evdevinput

import (
	"github.com/holoplot/go-evdev"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
)

// Action is what a key does to the navigation.
type Action int

const (
	ActionNone Action = iota
	ActionPrevious
	ActionNext
	ActionBack
)

func (a Action) String() string {
	switch a {
	case ActionPrevious:
		return "previous"
	case ActionNext:
		return "next"
	case ActionBack:
		return "back"
	default:
		return "none"
	}
}

func (a Action) direction() internal.Direction {
	switch a {
	case ActionPrevious:
		return internal.DirectionPrevious
	case ActionNext:
		return internal.DirectionNext
	default:
		return internal.DirectionNone
	}
}

// Keymap maps key codes to actions.
type Keymap map[evdev.EvCode]Action

// DefaultKeymap covers keyboards, remotes and handheld gamepads.
func DefaultKeymap() Keymap {
	return Keymap{
		evdev.KEY_LEFT:      ActionPrevious,
		evdev.KEY_UP:        ActionPrevious,
		evdev.KEY_PAGEUP:    ActionPrevious,
		evdev.BTN_TL:        ActionPrevious,
		evdev.KEY_RIGHT:     ActionNext,
		evdev.KEY_DOWN:      ActionNext,
		evdev.KEY_PAGEDOWN:  ActionNext,
		evdev.BTN_TR:        ActionNext,
		evdev.KEY_BACK:      ActionBack,
		evdev.KEY_ESC:       ActionBack,
		evdev.KEY_BACKSPACE: ActionBack,
		evdev.BTN_EAST:      ActionBack,
	}
}

// Key states carried in the value of an EV_KEY event.
const (
	keyReleased int32 = 0
	keyPressed  int32 = 1
	keyRepeated int32 = 2
)

// Event is a decoded key transition.
type Event struct {
	Action  Action
	Pressed bool
}

// Decode maps an input event to a key transition. Kernel autorepeat events
// are dropped; repeat timing is handled by the reader.
func (k Keymap) Decode(ev evdev.InputEvent) (Event, bool) {
	if ev.Type != evdev.EV_KEY || ev.Value == keyRepeated {
		return Event{}, false
	}
	action, ok := k[ev.Code]
	if !ok {
		return Event{}, false
	}
	return Event{Action: action, Pressed: ev.Value == keyPressed}, true
}
