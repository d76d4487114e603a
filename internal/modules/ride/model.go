// README: Session aggregate, sampling modes, and the state transition table.
package ride

import (
	"time"

	"ridetrack/internal/types"
)

type State string

const (
	StateIdle      State = "idle"
	StateActive    State = "active"
	StateCompleted State = "completed"
)

// Mode selects the position sampling strategy. It may only change while the
// session is idle.
type Mode string

const (
	ModeSimulate Mode = "simulate"
	ModeGPS      Mode = "gps"
)

// Sample is one timestamped position owned by the active session. Samples
// are append-only and never reordered.
type Sample struct {
	Position types.Point
	At       time.Time
}

// Snapshot is the live view recomputed on every tick. Purely observational:
// the final record is derived from the full sample set, not from a snapshot.
type Snapshot struct {
	State      State       `json:"state"`
	Mode       Mode        `json:"mode"`
	Elapsed    string      `json:"elapsed"`
	DistanceKm float64     `json:"distance_km"`
	Price      float64     `json:"price"`
	Samples    int         `json:"samples"`
	Position   types.Point `json:"position"`
}

// AllowedTransitions represents the session lifecycle as code. A completed
// session resets to idle so the machine can accept the next trip; there is
// no way back from completed to active for the same run.
var AllowedTransitions = map[State][]State{
	StateIdle:      {StateActive},
	StateActive:    {StateCompleted},
	StateCompleted: {StateIdle},
}

func CanTransition(from, to State) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
