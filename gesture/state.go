package gesture

// State is one of the six lifecycle states a Gesture moves through.
// Transitions are validated by the looplab/fsm-backed state machine in
// gesture.go; this is the public vocabulary recognizer subclasses and
// tests use to refer to them.
type State string

const (
	Waiting          State = "WAITING"
	Possible         State = "POSSIBLE"
	RecognizePending State = "RECOGNIZE_PENDING"
	Recognizing      State = "RECOGNIZING"
	Completed        State = "COMPLETED"
	Cancelled        State = "CANCELLED"
)

func (s State) String() string { return string(s) }

// hasPublicPoints reports whether a gesture in state s is allowed to
// expose its public point projection.
func (s State) hasPublicPoints() bool {
	switch s {
	case Possible, RecognizePending, Recognizing:
		return true
	default:
		return false
	}
}
