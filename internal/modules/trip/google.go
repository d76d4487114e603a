// README: Google Maps provider implementing both the geocoder and the route planner ports.
package trip

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"ridetrack/internal/types"
)

// GoogleProvider backs trip resolution with the Google Geocoding and
// Directions APIs. One client serves both ports.
type GoogleProvider struct {
	client *maps.Client
}

func NewGoogleProvider(apiKey string) (*GoogleProvider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleProvider{client: client}, nil
}

func (g *GoogleProvider) Geocode(ctx context.Context, query string) ([]Candidate, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: query})
	if err != nil {
		return nil, fmt.Errorf("maps api error: %w", err)
	}

	candidates := make([]Candidate, 0, len(results))
	for _, r := range results {
		candidates = append(candidates, Candidate{
			Position:    types.Point{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
			DisplayName: r.FormattedAddress,
		})
	}
	return candidates, nil
}

func (g *GoogleProvider) Plan(ctx context.Context, start, end types.Point) (Route, error) {
	r := &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", start.Lat, start.Lng),
		Destination: fmt.Sprintf("%f,%f", end.Lat, end.Lng),
		Mode:        maps.TravelModeDriving,
	}

	routes, _, err := g.client.Directions(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 {
		return nil, nil
	}

	points, err := routes[0].OverviewPolyline.Decode()
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}

	route := make(Route, 0, len(points))
	for _, p := range points {
		route = append(route, types.Point{Lat: p.Lat, Lng: p.Lng})
	}
	return route, nil
}
