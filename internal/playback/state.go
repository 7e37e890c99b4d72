package playback

// StateType is the playback state owned by the controller goroutine
type StateType int

const (
	// StateIdle means nothing is queued or being spoken
	StateIdle StateType = iota
	// StatePlaying means utterances are being spoken
	StatePlaying
	// StatePaused means the next utterance will not start until Resume
	StatePaused
	// StateStopping means the in-flight utterance was cancelled and has not returned yet
	StateStopping
)

// String returns the string representation of the state
func (s StateType) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateStopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// transitions lists the states reachable from each state
var transitions = map[StateType][]StateType{
	StateIdle:     {StatePlaying},
	StatePlaying:  {StatePaused, StateStopping, StateIdle},
	StatePaused:   {StatePlaying, StateStopping, StateIdle},
	StateStopping: {StateIdle},
}

// canTransition reports whether from -> to is a valid transition
func canTransition(from, to StateType) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Snapshot is a point-in-time view of the controller
type Snapshot struct {
	State   StateType
	Current string   // Utterance being spoken, empty if none
	Pending []string // Utterances not yet started
}

// Result describes how a run of utterances ended
type Result struct {
	Spoken  int   // Utterances completed in this run
	Stopped bool  // The run was ended by Stop
	Err     error // Synthesis failure that ended the run
}
