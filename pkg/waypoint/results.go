package waypoint

// Outcome is how a navigation request resolved.
type Outcome int

const (
	Committed    Outcome = iota // The destination is displayed
	NoOp                        // Already displayed, or nothing to do
	Superseded                  // A later request replaced it, or it was cancelled
	GuardDenied                 // Displayed content refused to unload
	GuardTimeout                // Unload checks did not resolve in time
	BuildFailed                 // The destination could not be rendered
)

func (o Outcome) String() string {
	switch o {
	case Committed:
		return "committed"
	case NoOp:
		return "no-op"
	case Superseded:
		return "superseded"
	case GuardDenied:
		return "guard-denied"
	case GuardTimeout:
		return "guard-timeout"
	case BuildFailed:
		return "build-failed"
	default:
		return "unknown"
	}
}

// Phase is the step a transition is in.
type Phase int32

const (
	PhaseIdle       Phase = iota // No transition in flight
	PhaseGuarding                // Running unload checks
	PhaseBuilding                // Rendering off-screen
	PhaseCommitting              // Swapping and animating; no longer cancellable
	PhaseDone                    // Committed or abandoned
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseGuarding:
		return "guarding"
	case PhaseBuilding:
		return "building"
	case PhaseCommitting:
		return "committing"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// OriginKind is what triggered a navigation request.
type OriginKind int

const (
	OriginProgrammatic OriginKind = iota // Application code
	OriginIndex                          // A navigation index item was activated
	OriginBack                           // GoBack
	OriginStep                           // Step, usually from hardware input
	OriginRestore                        // Session restore
)

func (k OriginKind) String() string {
	switch k {
	case OriginProgrammatic:
		return "programmatic"
	case OriginIndex:
		return "index"
	case OriginBack:
		return "back"
	case OriginStep:
		return "step"
	case OriginRestore:
		return "restore"
	default:
		return "unknown"
	}
}

// Origin describes the event behind a navigation request.
type Origin struct {
	Kind   OriginKind
	Source string // Free-form, e.g. an input device name
}
