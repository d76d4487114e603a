// README: OSRM-backed route planner adapter.
package trip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ridetrack/internal/types"
)

// Shared outbound timeout so a hung provider cannot block trip setup forever.
const httpTimeout = 10 * time.Second

// OSRMPlanner fetches driving routes from an OSRM-compatible /route service.
// The wire format carries (lon,lat) pairs; they are re-interpreted as
// (lat,lng) points internally.
type OSRMPlanner struct {
	client  *http.Client
	baseURL string
	profile string
}

func NewOSRMPlanner(baseURL string) *OSRMPlanner {
	return &OSRMPlanner{
		client:  &http.Client{Timeout: httpTimeout},
		baseURL: baseURL,
		profile: "driving",
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

func (p *OSRMPlanner) Plan(ctx context.Context, start, end types.Point) (Route, error) {
	url := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?overview=full&geometries=geojson",
		p.baseURL, p.profile, start.Lng, start.Lat, end.Lng, end.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create route request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute route request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("route: unexpected status %d", resp.StatusCode)
	}

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode route response: %w", err)
	}

	// "NoRoute" and friends are not transport errors: the trip simply has
	// no reference path.
	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return nil, nil
	}

	coords := decoded.Routes[0].Geometry.Coordinates
	route := make(Route, 0, len(coords))
	for _, c := range coords {
		if len(c) != 2 {
			return nil, fmt.Errorf("route: invalid coordinate pair of length %d", len(c))
		}
		route = append(route, types.Point{Lat: c[1], Lng: c[0]})
	}
	return route, nil
}
