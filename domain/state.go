package domain

// ServiceStatus is the lifecycle position of the registry.
type ServiceStatus string

const (
	StatusUninitialized ServiceStatus = "uninitialized"
	StatusActive        ServiceStatus = "active"
	StatusPaused        ServiceStatus = "paused"
)

// State is the registry's single shared state block.
// MessageCount is both the number of stored messages and the next identifier.
type State struct {
	Owner        Principal
	Initialized  bool
	Paused       bool
	MessageCount uint64
}

func NewState(owner Principal) State {
	return State{Owner: owner}
}

// Status derives the lifecycle position from the flags.
func (s State) Status() ServiceStatus {
	switch {
	case !s.Initialized:
		return StatusUninitialized
	case s.Paused:
		return StatusPaused
	default:
		return StatusActive
	}
}

// Writable reports whether message submission is currently allowed.
func (s State) Writable() bool {
	return s.Status() == StatusActive
}
