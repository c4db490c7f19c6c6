package tts

// State is the playback controller state.
type State int

const (
	// StateIdle indicates nothing is loading or playing.
	StateIdle State = iota
	// StateLoading indicates speech is being fetched and decoded.
	StateLoading
	// StatePlaying indicates a handle is playing.
	StatePlaying
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// StateMachine guards playback state transitions. It is not safe for
// concurrent use; the controller serializes access.
type StateMachine struct {
	current     State
	transitions map[State][]State
	onEnter     map[State]func()
}

// NewStateMachine creates a state machine in StateIdle.
func NewStateMachine() *StateMachine {
	return &StateMachine{
		current: StateIdle,
		transitions: map[State][]State{
			StateIdle:    {StateLoading},
			StateLoading: {StatePlaying, StateIdle},
			StatePlaying: {StateIdle},
		},
		onEnter: make(map[State]func()),
	}
}

// Transition moves to the given state if the move is allowed.
func (sm *StateMachine) Transition(to State) bool {
	valid := false
	for _, state := range sm.transitions[sm.current] {
		if state == to {
			valid = true
			break
		}
	}
	if !valid {
		return false
	}

	sm.current = to

	if enterFn, ok := sm.onEnter[to]; ok && enterFn != nil {
		enterFn()
	}
	return true
}

// Current returns the current state.
func (sm *StateMachine) Current() State {
	return sm.current
}

// OnEnter registers a callback for entering a state.
func (sm *StateMachine) OnEnter(state State, fn func()) {
	sm.onEnter[state] = fn
}
