package pool

// Status is the lifecycle state of a pool.
type Status int

const (
	StatusPending Status = iota
	StatusActive
	StatusFunded
	StatusCompleted
	StatusDefaulted
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusActive:
		return "active"
	case StatusFunded:
		return "funded"
	case StatusCompleted:
		return "completed"
	case StatusDefaulted:
		return "defaulted"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition may leave the state.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusDefaulted:
		return true
	case StatusPending, StatusActive, StatusFunded:
		return false
	default:
		return false
	}
}

// Accepting reports whether the pool takes contributions in this state.
func (s Status) Accepting() bool {
	switch s {
	case StatusPending, StatusActive:
		return true
	case StatusFunded, StatusCompleted, StatusDefaulted:
		return false
	default:
		return false
	}
}
