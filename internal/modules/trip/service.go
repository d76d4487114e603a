// README: Trip setup service: resolves place names, plans the reference route, builds the trip config.
package trip

import (
	"context"
	"errors"
	"log"
	"strings"

	"ridetrack/internal/types"
)

var (
	// ErrInvalidInput rejects bad setup input before any network call.
	ErrInvalidInput = errors.New("invalid trip input")
	// ErrNotFound covers both "no geocode candidates" and geocoding
	// transport failures; the operator sees a single "location not found"
	// outcome either way.
	ErrNotFound = errors.New("location not found")
)

// Geocoder resolves a free-text place name to candidate coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) ([]Candidate, error)
}

// Planner fetches a driving route between two coordinates.
type Planner interface {
	Plan(ctx context.Context, start, end types.Point) (Route, error)
}

type Service struct {
	geocoder Geocoder
	planner  Planner
}

func NewService(geocoder Geocoder, planner Planner) *Service {
	return &Service{geocoder: geocoder, planner: planner}
}

// Resolve returns the top-relevance candidate for a place name. There is no
// disambiguation step: the first candidate is always the one used.
func (s *Service) Resolve(ctx context.Context, query string) (Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Candidate{}, ErrInvalidInput
	}
	candidates, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		log.Printf("geocode %q: %v", query, err)
		return Candidate{}, ErrNotFound
	}
	if len(candidates) == 0 {
		return Candidate{}, ErrNotFound
	}
	return candidates[0], nil
}

// Plan fetches the route geometry between start and end. Transport failures
// degrade to an empty route: downstream code treats "no reference path" as a
// soft condition (simulation refuses to start, live GPS is unaffected).
func (s *Service) Plan(ctx context.Context, start, end types.Point) Route {
	route, err := s.planner.Plan(ctx, start, end)
	if err != nil {
		log.Printf("plan route: %v", err)
		return nil
	}
	return route
}

type SetupRequest struct {
	PricePerKm float64
	StartQuery string
	EndQuery   string
}

// Setup runs the whole trip-setup flow: input validation, geocoding of both
// endpoints (first candidate wins), and route planning.
func (s *Service) Setup(ctx context.Context, req SetupRequest) (Config, Route, error) {
	if req.PricePerKm <= 0 {
		return Config{}, nil, ErrInvalidInput
	}
	if strings.TrimSpace(req.StartQuery) == "" || strings.TrimSpace(req.EndQuery) == "" {
		return Config{}, nil, ErrInvalidInput
	}

	start, err := s.Resolve(ctx, req.StartQuery)
	if err != nil {
		return Config{}, nil, err
	}
	end, err := s.Resolve(ctx, req.EndQuery)
	if err != nil {
		return Config{}, nil, err
	}

	cfg := Config{
		PricePerKm: req.PricePerKm,
		Start:      start.Position,
		End:        end.Position,
		StartLabel: start.DisplayName,
		EndLabel:   end.DisplayName,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, nil, err
	}

	return cfg, s.Plan(ctx, cfg.Start, cfg.End), nil
}
