// README: Trip setup aggregates: geocode candidates, planned routes, and the per-trip config.
package trip

import (
	"ridetrack/internal/types"
)

// Candidate is one geocoding result, ordered by provider relevance.
type Candidate struct {
	Position    types.Point
	DisplayName string
}

// Route is the planned path between the two trip endpoints. It is built once
// per trip and never mutated afterwards; the simulation sampler replays it
// and the live view draws it.
type Route []types.Point

// Config holds everything a session needs about one trip. Immutable once a
// session has started.
type Config struct {
	PricePerKm float64
	Start      types.Point
	End        types.Point
	StartLabel string
	EndLabel   string
}

// Validate enforces the invariants a session relies on: a positive rate and
// endpoints inside the representable coordinate ranges.
func (c Config) Validate() error {
	if c.PricePerKm <= 0 {
		return ErrInvalidInput
	}
	if !c.Start.Valid() || !c.End.Valid() {
		return ErrInvalidInput
	}
	if c.StartLabel == "" || c.EndLabel == "" {
		return ErrInvalidInput
	}
	return nil
}
