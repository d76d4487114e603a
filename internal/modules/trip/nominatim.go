// README: Nominatim-backed geocoder adapter.
package trip

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"ridetrack/internal/types"
)

const nominatimUserAgent = "ridetrack/1.0"

// NominatimGeocoder resolves place names through a Nominatim-compatible
// /search endpoint. A single attempt per call: failures surface to the
// caller, which collapses them into the "not found" outcome.
type NominatimGeocoder struct {
	client  *http.Client
	baseURL string
	limit   int
}

func NewNominatimGeocoder(baseURL string) *NominatimGeocoder {
	return &NominatimGeocoder{
		client:  &http.Client{Timeout: httpTimeout},
		baseURL: baseURL,
		limit:   5,
	}
}

// Nominatim emits lat/lon as JSON strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, query string) ([]Candidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search", nil)
	if err != nil {
		return nil, fmt.Errorf("create geocode request: %w", err)
	}
	req.Header.Set("User-Agent", nominatimUserAgent)
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(g.limit))
	req.URL.RawQuery = q.Encode()

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	var decoded []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode geocode response: %w", err)
	}

	candidates := make([]Candidate, 0, len(decoded))
	for _, r := range decoded {
		lat, err := strconv.ParseFloat(r.Lat, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude %q: %w", r.Lat, err)
		}
		lon, err := strconv.ParseFloat(r.Lon, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude %q: %w", r.Lon, err)
		}
		candidates = append(candidates, Candidate{
			Position:    types.Point{Lat: lat, Lng: lon},
			DisplayName: r.DisplayName,
		})
	}
	return candidates, nil
}
