package sdlhost

import (
	"context"
	"time"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

const frameMillis = 16

// Frame is one frame interval at ~60fps.
const Frame = frameMillis * time.Millisecond

// Default animation lengths per motion class.
const (
	PageDuration      = 180 * time.Millisecond
	ContinuumDuration = 280 * time.Millisecond
	SlideDuration     = 220 * time.Millisecond
)

// Animator moves elements through view.Translator one frame at a time.
// Elements that cannot be translated jump to their final state.
type Animator struct {
	// Tick waits for the next frame. Defaults to sleeping one Frame.
	Tick func(ctx context.Context) error
	// Redraw runs after every frame's offsets are applied. It is called from
	// the transition goroutine; SDL hosts leave it nil and let Window.Run
	// present from the main thread.
	Redraw func()
}

// AnimateEnter leaves visibility alone; the layout decides what is shown.
func (a *Animator) AnimateEnter(ctx context.Context, elements []view.Element, m view.Motion) error {
	return a.run(ctx, elements, m.Offset, view.Offset{}, duration(m))
}

func (a *Animator) AnimateExit(ctx context.Context, elements []view.Element, m view.Motion) error {
	err := a.run(ctx, elements, view.Offset{}, m.Offset, duration(m))
	for _, el := range elements {
		el.SetVisible(false)
		translate(el, view.Offset{})
	}
	return err
}

func (a *Animator) run(ctx context.Context, elements []view.Element, from, to view.Offset, d time.Duration) error {
	frames := frameCount(d)
	for i := 1; i <= frames; i++ {
		o := interpolate(from, to, easeOutCubic(float64(i)/float64(frames)))
		for _, el := range elements {
			translate(el, o)
		}
		if a.Redraw != nil {
			a.Redraw()
		}
		if i == frames {
			break
		}
		if err := a.tick(ctx); err != nil {
			for _, el := range elements {
				translate(el, to)
			}
			return err
		}
	}
	return nil
}

func (a *Animator) tick(ctx context.Context) error {
	if a.Tick != nil {
		return a.Tick(ctx)
	}
	t := time.NewTimer(Frame)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func translate(el view.Element, o view.Offset) {
	if tr, ok := el.(view.Translator); ok {
		tr.SetOffset(o)
	}
}

func duration(m view.Motion) time.Duration {
	switch m.Kind {
	case view.MotionContinuum:
		return ContinuumDuration
	case view.MotionSlide:
		return SlideDuration
	default:
		return PageDuration
	}
}

func frameCount(d time.Duration) int {
	return max(int(d/Frame), 1)
}

func easeOutCubic(t float64) float64 {
	t = min(max(t, 0), 1) - 1
	return t*t*t + 1
}

func interpolate(from, to view.Offset, t float64) view.Offset {
	lerp := func(a, b int) int {
		return a + int(float64(b-a)*t+0.5*sign(b-a))
	}
	return view.Offset{X: lerp(from.X, to.X), Y: lerp(from.Y, to.Y)}
}

func sign(n int) float64 {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
