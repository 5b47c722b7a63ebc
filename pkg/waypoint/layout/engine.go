// Package layout classifies the viewport into breakpoint classes and computes
// the geometry of the page slot, the master slot and the secondary navigation
// index. It is pure: it never touches navigation state, it only returns
// numbers and booleans for the controller to apply.
package layout

import (
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/view"
)

// Breakpoint is a viewport-width class.
type Breakpoint int

const (
	Small       Breakpoint = iota // ≤ 499px
	MediumSmall                   // ≤ 699px
	Medium                        // ≤ 899px
	Bigger                        // ≤ 1099px
	Full                          // anything wider
)

func (b Breakpoint) String() string {
	switch b {
	case Small:
		return "small"
	case MediumSmall:
		return "medium-small"
	case Medium:
		return "medium"
	case Bigger:
		return "bigger"
	case Full:
		return "full"
	default:
		return ""
	}
}

// Classify maps a viewport width to its breakpoint.
func Classify(width int) Breakpoint {
	switch {
	case width <= constants.SmallMaxWidth:
		return Small
	case width <= constants.MediumSmallMaxWidth:
		return MediumSmall
	case width <= constants.MediumMaxWidth:
		return Medium
	case width <= constants.BiggerMaxWidth:
		return Bigger
	default:
		return Full
	}
}

// Input is everything a layout pass depends on.
type Input struct {
	Viewport       view.Viewport
	MasterPaired   bool // A master view is paired with the current page
	DetailRevealed bool // The user revealed the page over a maximized master
	IndexPresent   bool // The secondary index exists and is non-empty
	Orientation    view.Orientation
}

// Result is the geometry produced by one layout pass.
type Result struct {
	Breakpoint      Breakpoint
	Classes         []string
	Page            view.Rect
	Master          view.Rect
	Index           view.Rect
	PageVisible     bool
	MasterVisible   bool
	IndexVisible    bool
	MasterMaximized bool
}

// HasClass reports whether class is part of the result's style classes.
func (r Result) HasClass(class string) bool {
	for _, c := range r.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// Options tunes the engine's fixed dimensions. Zero values use the defaults
// from the constants package.
type Options struct {
	Insets             view.Insets
	MasterLaneMinWidth int
	MasterLaneWidth    int
	MasterLaneRatio    float64
	IndexBarHeight     int
	IndexRailWidth     int
}

// Engine computes layouts.
type Engine struct {
	opts Options
}

// NewEngine creates an engine with default dimensions.
func NewEngine() *Engine {
	return NewEngineWithOptions(Options{})
}

// NewEngineWithOptions creates an engine with custom dimensions.
func NewEngineWithOptions(opts Options) *Engine {
	if opts.MasterLaneMinWidth == 0 {
		opts.MasterLaneMinWidth = constants.MasterLaneMinWidth
	}
	if opts.MasterLaneWidth == 0 {
		opts.MasterLaneWidth = constants.MasterLaneWidth
	}
	if opts.MasterLaneRatio == 0 {
		opts.MasterLaneRatio = constants.MasterLaneRatio
	}
	if opts.IndexBarHeight == 0 {
		opts.IndexBarHeight = constants.IndexBarHeight
	}
	if opts.IndexRailWidth == 0 {
		opts.IndexRailWidth = constants.IndexRailWidth
	}
	return &Engine{opts: opts}
}

// Compute runs one layout pass.
func (e *Engine) Compute(in Input) Result {
	width := max(in.Viewport.Width, 0)
	height := max(in.Viewport.Height, 0)

	res := Result{Breakpoint: Classify(width)}
	res.Classes = append(res.Classes, "layout-"+res.Breakpoint.String())

	content := e.opts.Insets.Apply(view.Rect{W: width, H: height})

	if in.IndexPresent {
		res.IndexVisible = true
		switch in.Orientation {
		case view.Vertical:
			rail := min(e.opts.IndexRailWidth, content.W)
			res.Index = view.Rect{X: content.X, Y: content.Y, W: rail, H: content.H}
			content.X += rail
			content.W -= rail
			res.Classes = append(res.Classes, "index-vertical")
		default:
			bar := min(e.opts.IndexBarHeight, content.H)
			res.Index = view.Rect{X: content.X, Y: content.Y, W: content.W, H: bar}
			content.Y += bar
			content.H -= bar
			res.Classes = append(res.Classes, "index-horizontal")
		}
	} else {
		res.Classes = append(res.Classes, "no-index")
	}

	if !in.MasterPaired {
		res.Page = content
		res.PageVisible = true
		res.Classes = append(res.Classes, "no-master")
		return res
	}

	if width < e.opts.MasterLaneMinWidth {
		res.MasterMaximized = true
		res.Page = content
		res.Master = content
		res.PageVisible = in.DetailRevealed
		res.MasterVisible = !in.DetailRevealed
		res.Classes = append(res.Classes, "master-maximized")
		if in.DetailRevealed {
			res.Classes = append(res.Classes, "detail-revealed")
		}
		return res
	}

	lane := min(e.laneWidth(res.Breakpoint, width), content.W)
	res.Master = view.Rect{X: content.X, Y: content.Y, W: lane, H: content.H}
	res.Page = view.Rect{X: content.X + lane, Y: content.Y, W: content.W - lane, H: content.H}
	res.PageVisible = true
	res.MasterVisible = true
	res.Classes = append(res.Classes, "master-lane")
	return res
}

func (e *Engine) laneWidth(bp Breakpoint, width int) int {
	if bp != Full {
		return e.opts.MasterLaneWidth
	}
	return max(int(float64(width)*e.opts.MasterLaneRatio), e.opts.MasterLaneWidth)
}
