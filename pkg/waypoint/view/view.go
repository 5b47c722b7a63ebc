// Package view defines the contracts the navigation engine consumes from its
// rendering host: element containers, rendered content roots, the renderer,
// the animator and the viewport source.
//
// Nothing in this package renders anything. Hosts implement these
// interfaces (see the memview, httpsource and sdlhost packages) and hand them
// to waypoint.New.
package view

import "context"

// Element is a node of the host's visual tree that the engine can size,
// show, hide and mount rendered content into.
type Element interface {
	ID() string
	SetVisible(visible bool)
	SetBounds(r Rect)
	Mount(content any)
}

// Container is an Element that owns child elements.
// Slots create one child per transition and remove it on teardown.
type Container interface {
	Element
	CreateChild(id string) (Element, error)
	RemoveChild(child Element)
}

// HostProvider is implemented by content roots (or elements) that expose
// placeholder containers for fragments.
type HostProvider interface {
	Host(id string) (Container, bool)
}

// Root is the rendered content produced by a Renderer for one address.
type Root interface {
	Address() string
}

// UnloadChecker is the optional "may I unload?" capability of a Root.
// Returning false denies the navigation away from the content.
type UnloadChecker interface {
	CheckUnload(ctx context.Context) (bool, error)
}

// Disposer is the optional teardown hook of a Root. It is called once, when
// the content is destroyed after the next successful commit.
type Disposer interface {
	Dispose()
}

// Renderer resolves an address to markup and renders it into an element.
type Renderer interface {
	Render(ctx context.Context, address string, into Element) (Root, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context, address string, into Element) (Root, error)

func (f RendererFunc) Render(ctx context.Context, address string, into Element) (Root, error) {
	return f(ctx, address, into)
}

// Animator runs enter and exit animations for a transition.
// An error is treated as animation-complete by the engine.
type Animator interface {
	AnimateEnter(ctx context.Context, elements []Element, motion Motion) error
	AnimateExit(ctx context.Context, elements []Element, motion Motion) error
}

// Translator is the optional capability of an Element to be drawn at an
// offset from its bounds. Animators move elements through it.
type Translator interface {
	SetOffset(o Offset)
}

// NoAnimation completes every animation immediately.
type NoAnimation struct{}

func (NoAnimation) AnimateEnter(context.Context, []Element, Motion) error { return nil }
func (NoAnimation) AnimateExit(context.Context, []Element, Motion) error  { return nil }

// ViewportSource reports the current viewport dimensions.
type ViewportSource interface {
	Viewport() Viewport
}

// ViewportFunc adapts a function to the ViewportSource interface.
type ViewportFunc func() Viewport

func (f ViewportFunc) Viewport() Viewport { return f() }

// FixedViewport is a ViewportSource that never changes.
type FixedViewport Viewport

func (v FixedViewport) Viewport() Viewport { return Viewport(v) }

// ErrorReporter surfaces build failures to the page controller's error channel.
type ErrorReporter interface {
	ReportError(destination string, err error)
}
