package view

// Viewport is the size of the host surface in pixels.
type Viewport struct {
	Width  int
	Height int
}

// Rect is a pixel rectangle relative to the host surface.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// IsZero reports whether the rectangle has no area.
func (r Rect) IsZero() bool {
	return r.W <= 0 || r.H <= 0
}

// Offset is a translation applied at the start of an enter animation
// (or the end of an exit animation).
type Offset struct {
	X int
	Y int
}

// Negate returns the offset pointing the opposite way.
func (o Offset) Negate() Offset {
	return Offset{X: -o.X, Y: -o.Y}
}

// Insets defines spacing on all four sides of a region.
type Insets struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// UniformInsets creates Insets with the same value on all sides.
func UniformInsets(value int) Insets {
	return Insets{
		Top:    value,
		Right:  value,
		Bottom: value,
		Left:   value,
	}
}

// Apply shrinks r by the insets, clamping at zero size.
func (i Insets) Apply(r Rect) Rect {
	out := Rect{
		X: r.X + i.Left,
		Y: r.Y + i.Top,
		W: r.W - i.Left - i.Right,
		H: r.H - i.Top - i.Bottom,
	}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// Orientation is the physical axis of the secondary navigation index.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return ""
	}
}

// ParseOrientation maps "horizontal"/"vertical" to an Orientation.
// Anything else is Horizontal.
func ParseOrientation(s string) Orientation {
	if s == "vertical" {
		return Vertical
	}
	return Horizontal
}
