// Package sdlhost hosts the navigation engine in an SDL window: the window
// size is the layout viewport, and transition animations are timed to the
// window's frames.
package sdlhost

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

// WindowOptions selects the window style. The zero value opens a
// resizable window at the display size.
type WindowOptions struct {
	Resizable  bool
	Borderless bool
	Fullscreen bool // Desktop fullscreen; the viewport follows the display
	Hidden     bool

	Width, Height int32 // Zero uses the display mode size
}

func (o WindowOptions) flags() uint32 {
	flags := uint32(sdl.WINDOW_SHOWN)
	for _, f := range []struct {
		on   bool
		flag uint32
	}{
		{o.Resizable, sdl.WINDOW_RESIZABLE},
		{o.Borderless, sdl.WINDOW_BORDERLESS},
		{o.Fullscreen, sdl.WINDOW_FULLSCREEN_DESKTOP},
	} {
		if f.on {
			flags |= f.flag
		}
	}
	if o.Hidden {
		flags = flags&^sdl.WINDOW_SHOWN | sdl.WINDOW_HIDDEN
	}
	return flags
}

// Window wraps an SDL window and renderer. It implements view.ViewportSource.
type Window struct {
	Window   *sdl.Window
	Renderer *sdl.Renderer
	Title    string

	logger          *slog.Logger
	hasVSync        bool
	mu              sync.Mutex
	lastPresentTime uint64
}

// Open initializes SDL video and creates the window. In development mode
// the window is decorated and sized from WINDOW_WIDTH and WINDOW_HEIGHT.
func Open(title string, opts WindowOptions) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("sdl: init: %w", err)
	}
	logger := internal.Logger("sdlhost")

	if opts == (WindowOptions{}) {
		opts.Resizable = true
	}

	width, height := opts.Width, opts.Height
	if width == 0 || height == 0 {
		mode, err := sdl.GetCurrentDisplayMode(0)
		if err != nil {
			logger.Error("Failed to get display mode", "error", err)
			mode.W, mode.H = 1024, 768
		}
		width, height = mode.W, mode.H
	}

	x, y := int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED)
	if constants.IsDevMode() {
		opts.Borderless = false
		x, y = 50, 50
		width = envSize(logger, constants.WindowWidthEnvVar, 1024)
		height = envSize(logger, constants.WindowHeightEnvVar, 768)
	}

	logger.Debug("Initializing SDL window", "width", width, "height", height)

	window, err := sdl.CreateWindow(title, x, y, width, height, opts.flags())
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdl: create renderer: %w", err)
	}

	info, err := renderer.GetInfo()
	vsync := err == nil && info.Flags&sdl.RENDERER_PRESENTVSYNC != 0

	return &Window{
		Window:   window,
		Renderer: renderer,
		Title:    title,
		logger:   logger,
		hasVSync: vsync,
	}, nil
}

func envSize(logger *slog.Logger, name string, fallback int32) int32 {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		logger.Warn("Invalid window size; using default", "variable", name, "value", v, "error", err)
		return fallback
	}
	return int32(n)
}

// Viewport returns the current window size.
func (w *Window) Viewport() view.Viewport {
	width, height := w.Window.GetSize()
	return view.Viewport{Width: int(width), Height: int(height)}
}

// Present swaps the render buffer and enforces ~60fps frame timing
// when VSync is not available.
func (w *Window) Present() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.Renderer.Present()
	if !w.hasVSync {
		now := sdl.GetTicks64()
		if elapsed := now - w.lastPresentTime; elapsed < frameMillis {
			sdl.Delay(uint32(frameMillis - elapsed))
		}
		w.lastPresentTime = sdl.GetTicks64()
	}
}

// Run pumps SDL events until ctx is done or the window is closed. onResize
// runs after every size change; hosts pass Controller.Relayout.
func (w *Window) Run(ctx context.Context, onResize func()) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				w.logger.Debug("Window closed")
				return nil
			case *sdl.WindowEvent:
				if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED && onResize != nil {
					onResize()
				}
			}
		}
		w.Present()
	}
}

// Close destroys the renderer and the window and shuts SDL down.
func (w *Window) Close() {
	w.Renderer.Destroy()
	w.Window.Destroy()
	sdl.Quit()
}
