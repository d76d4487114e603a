// README: Ride history contract: completed ride records, most-recent-first.
package history

import "context"

// Record is the immutable snapshot of one completed ride. Once stored it is
// never mutated; deletion is full-replace only (Clear).
type Record struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	StartLocation string  `json:"startLocation"`
	EndLocation   string  `json:"endLocation"`
	Duration      string  `json:"duration"`
	DistanceKm    float64 `json:"distance"`
	Price         float64 `json:"price"`
}

// Store persists completed rides. Save inserts at the head of the list so
// List always returns most-recent-first.
type Store interface {
	Save(ctx context.Context, rec Record) error
	List(ctx context.Context) ([]Record, error)
	Clear(ctx context.Context) error
}
