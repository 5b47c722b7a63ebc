package view

// MotionKind is the transition class an Animator is asked to play.
type MotionKind int

const (
	MotionPage      MotionKind = iota // Neutral full-page fade/slide, no left/right distinction
	MotionContinuum                   // Group-level jump in the navigation index
	MotionSlide                       // Item-level move within one group
)

func (k MotionKind) String() string {
	switch k {
	case MotionPage:
		return "page"
	case MotionContinuum:
		return "continuum"
	case MotionSlide:
		return "slide"
	default:
		return ""
	}
}

// MotionDirection is the logical direction of a transition.
type MotionDirection int

const (
	DirectionNone MotionDirection = iota
	DirectionForward
	DirectionBackward
)

func (d MotionDirection) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	default:
		return "none"
	}
}

// Motion describes one transition animation.
// Offset is the enter translation; exits use Exit().
type Motion struct {
	Kind      MotionKind
	Direction MotionDirection
	Offset    Offset
}

// Exit returns the motion for the outgoing content: same class, opposite offset.
func (m Motion) Exit() Motion {
	return Motion{Kind: m.Kind, Direction: m.Direction, Offset: m.Offset.Negate()}
}
