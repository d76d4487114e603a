// README: HTTP adapter tests against stub geocode/route servers.
package trip

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"ridetrack/internal/types"
)

func pt(lat, lng float64) types.Point {
	return types.Point{Lat: lat, Lng: lng}
}

func TestNominatimGeocoder_ParsesCandidates(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q, want /search", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"lat": "51.5080", "lon": "-0.1281", "display_name": "Trafalgar Square, London"},
			{"lat": "40.0000", "lon": "-75.0000", "display_name": "Trafalgar Square, Philadelphia"}
		]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL)
	candidates, err := g.Geocode(context.Background(), "Trafalgar Square")
	if err != nil {
		t.Fatalf("geocode: %v", err)
	}
	if gotQuery != "Trafalgar Square" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(candidates) != 2 {
		t.Fatalf("candidates = %d, want 2", len(candidates))
	}
	// Provider relevance order must survive parsing.
	if candidates[0].DisplayName != "Trafalgar Square, London" {
		t.Errorf("first candidate = %q", candidates[0].DisplayName)
	}
	if math.Abs(candidates[0].Position.Lat-51.5080) > 1e-9 || math.Abs(candidates[0].Position.Lng+0.1281) > 1e-9 {
		t.Errorf("first candidate position = %v", candidates[0].Position)
	}
}

func TestNominatimGeocoder_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL)
	candidates, err := g.Geocode(context.Background(), "Nowhere12345xyz")
	if err != nil {
		t.Fatalf("geocode: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("candidates = %d, want 0", len(candidates))
	}
}

func TestNominatimGeocoder_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL)
	if _, err := g.Geocode(context.Background(), "anywhere"); err == nil {
		t.Fatal("expected error on 503")
	}
}

func TestNominatimGeocoder_BadCoordinate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"lat": "not-a-number", "lon": "0", "display_name": "x"}]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL)
	if _, err := g.Geocode(context.Background(), "anywhere"); err == nil {
		t.Fatal("expected error on malformed latitude")
	}
}

func TestOSRMPlanner_FlipsCoordinatePairs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The request carries lon,lat; so does the response geometry.
		if want := "/route/v1/driving/-0.127800,51.507400;-0.117800,51.517400"; r.URL.Path != want {
			t.Errorf("path = %q, want %q", r.URL.Path, want)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": "Ok",
			"routes": [{"geometry": {"coordinates": [[-0.1278, 51.5074], [-0.1228, 51.5124], [-0.1178, 51.5174]]}}]
		}`))
	}))
	defer srv.Close()

	p := NewOSRMPlanner(srv.URL)
	route, err := p.Plan(context.Background(),
		// types.Point is (lat,lng); the adapter converts both ways.
		pt(51.5074, -0.1278), pt(51.5174, -0.1178))
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(route) != 3 {
		t.Fatalf("route length = %d, want 3", len(route))
	}
	if route[0] != pt(51.5074, -0.1278) || route[2] != pt(51.5174, -0.1178) {
		t.Errorf("route endpoints = %v .. %v", route[0], route[len(route)-1])
	}
}

func TestOSRMPlanner_NoRouteIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	}))
	defer srv.Close()

	p := NewOSRMPlanner(srv.URL)
	route, err := p.Plan(context.Background(), pt(0, 0), pt(1, 1))
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(route) != 0 {
		t.Fatalf("route = %v, want empty", route)
	}
}

func TestOSRMPlanner_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewOSRMPlanner(srv.URL)
	if _, err := p.Plan(context.Background(), pt(0, 0), pt(1, 1)); err == nil {
		t.Fatal("expected error on 502")
	}
}
