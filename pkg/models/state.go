package models

// Reachability is the outcome of the most recent probe
type Reachability int

const (
	ReachabilityUnknown Reachability = iota
	Reachable
	Unreachable
)

func (r Reachability) String() string {
	switch r {
	case Reachable:
		return "reachable"
	case Unreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// FetchPhase identifies which FetchState variant is active
type FetchPhase int

const (
	FetchIdle FetchPhase = iota
	FetchLoading
	FetchError
	FetchLoaded
)

func (p FetchPhase) String() string {
	switch p {
	case FetchLoading:
		return "loading"
	case FetchError:
		return "error"
	case FetchLoaded:
		return "loaded"
	default:
		return "idle"
	}
}

// FetchState is idle, loading, error(Message) or loaded(Content).
// Only the field matching Phase is meaningful.
type FetchState struct {
	Phase   FetchPhase
	Message string
	Content []string
}

// IdleState returns the state used after a tab change
func IdleState() FetchState {
	return FetchState{Phase: FetchIdle}
}

// LoadingState returns the in-flight state
func LoadingState() FetchState {
	return FetchState{Phase: FetchLoading}
}

// ErrorState returns a failed state carrying a user-facing message
func ErrorState(message string) FetchState {
	return FetchState{Phase: FetchError, Message: message}
}

// LoadedState returns a state holding fetched lines
func LoadedState(content []string) FetchState {
	return FetchState{Phase: FetchLoaded, Content: content}
}

// CanFetch reports whether a fetch may be triggered from this state
func (s FetchState) CanFetch() bool {
	return s.Phase == FetchIdle || s.Phase == FetchError
}
