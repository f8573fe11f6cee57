package stepflow

// State is the lifecycle state of a run.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateSucceeded
	StateFailed
	StateFaulted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateFaulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// Terminal tells if no transition can leave s.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed || s == StateFaulted
}

// Result is the outcome of a run that did not fault.
type Result[C any] struct {
	RunID string
	State State
	// Config is the final configuration on success, and the last configuration accepted by a step on failure.
	Config  C
	Failure *Failure
}

// Succeeded tells if every step succeeded.
func (r *Result[C]) Succeeded() bool {
	return r != nil && r.State == StateSucceeded
}
