package evdevinput

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/holoplot/go-evdev"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
)

// Navigator is the part of the controller the reader drives.
type Navigator interface {
	Step(ctx context.Context, delta int, source string) *waypoint.Transition
	GoBack(ctx context.Context) *waypoint.Transition
}

// Options configures a Reader.
type Options struct {
	Keymap         Keymap        // Defaults to DefaultKeymap
	RepeatDelay    time.Duration // Hold time before the first repeat
	RepeatInterval time.Duration // Time between later repeats
	Tick           time.Duration // Repeat poll interval (default 16ms)
	Logger         *slog.Logger
}

// Reader turns key events from one device into navigation requests.
type Reader struct {
	path   string
	keymap Keymap
	nav    Navigator
	repeat internal.DirectionalInput
	tick   time.Duration
	logger *slog.Logger
	source string
	opener func(string) (eventSource, error)
}

type eventSource interface {
	ReadOne() (*evdev.InputEvent, error)
	Close() error
}

// New creates a reader for the device at path.
func New(path string, nav Navigator, opts Options) *Reader {
	if opts.Keymap == nil {
		opts.Keymap = DefaultKeymap()
	}
	if opts.Tick <= 0 {
		opts.Tick = 16 * time.Millisecond
	}
	repeat := internal.NewDirectionalInput()
	if opts.RepeatDelay > 0 && opts.RepeatInterval > 0 {
		repeat = internal.NewDirectionalInputWithTiming(opts.RepeatDelay, opts.RepeatInterval)
	}
	return &Reader{
		path:   path,
		keymap: opts.Keymap,
		nav:    nav,
		repeat: repeat,
		tick:   opts.Tick,
		logger: internal.OrDefault(opts.Logger, "evdev").With("device", path),
		source: "evdev:" + path,
		opener: func(p string) (eventSource, error) { return evdev.Open(p) },
	}
}

// Run reads events until ctx is done or the device fails. Closing the
// device is what unblocks the pending read on cancellation.
func (r *Reader) Run(ctx context.Context) error {
	dev, err := r.opener(r.path)
	if err != nil {
		return fmt.Errorf("evdev: open %s: %w", r.path, err)
	}
	if named, ok := dev.(interface{ Name() (string, error) }); ok {
		if name, err := named.Name(); err == nil {
			r.logger.Info("Input device opened", "name", name)
		}
	}

	events := make(chan evdev.InputEvent)
	readErr := make(chan error, 1)
	go func() {
		for {
			ev, err := dev.ReadOne()
			if err != nil {
				readErr <- err
				return
			}
			select {
			case events <- *ev:
			case <-ctx.Done():
				readErr <- ctx.Err()
				return
			}
		}
	}()

	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = dev.Close()
			<-readErr
			return nil
		case err := <-readErr:
			_ = dev.Close()
			if errors.Is(err, os.ErrClosed) || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("evdev: read %s: %w", r.path, err)
		case ev := <-events:
			r.handle(ctx, ev)
		case <-ticker.C:
			if dir := r.repeat.Update(); dir != internal.DirectionNone {
				r.step(ctx, dir)
			}
		}
	}
}

func (r *Reader) handle(ctx context.Context, ev evdev.InputEvent) {
	e, ok := r.keymap.Decode(ev)
	if !ok {
		return
	}
	r.logger.Debug("Key", "action", e.Action.String(), "pressed", e.Pressed)

	if e.Action == ActionBack {
		if e.Pressed {
			r.nav.GoBack(ctx)
		}
		return
	}

	dir := e.Action.direction()
	r.repeat.SetHeld(dir, e.Pressed)
	if e.Pressed {
		r.step(ctx, dir)
	}
}

func (r *Reader) step(ctx context.Context, dir internal.Direction) {
	r.nav.Step(ctx, dir.Delta(), r.source)
}
