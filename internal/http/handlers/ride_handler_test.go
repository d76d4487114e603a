// README: End-to-end handler tests over the wired router.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	httptransport "ridetrack/internal/http"
	"ridetrack/internal/http/ws"
	"ridetrack/internal/modules/history"
	"ridetrack/internal/modules/ride"
	"ridetrack/internal/modules/trip"
	"ridetrack/internal/types"
)

// stubGeocoder resolves any query except the "Nowhere" family.
type stubGeocoder struct{}

func (stubGeocoder) Geocode(_ context.Context, query string) ([]trip.Candidate, error) {
	if strings.HasPrefix(query, "Nowhere") {
		return nil, nil
	}
	return []trip.Candidate{
		{Position: types.Point{Lat: 51.5074, Lng: -0.1278}, DisplayName: query + ", London"},
	}, nil
}

type stubPlanner struct{}

func (stubPlanner) Plan(_ context.Context, start, end types.Point) (trip.Route, error) {
	mid := types.Point{Lat: (start.Lat + end.Lat) / 2, Lng: (start.Lng + end.Lng) / 2}
	return trip.Route{start, mid, end}, nil
}

func buildTestRouter(t *testing.T) (*gin.Engine, history.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := history.NewMemoryStore()
	source := ride.NewPushSource()
	rideSvc := ride.NewService(store, source, ride.Options{
		TickInterval: 2 * time.Millisecond,
		SimInterval:  2 * time.Millisecond,
	})
	tripSvc := trip.NewService(stubGeocoder{}, stubPlanner{})

	r := httptransport.NewRouter(httptransport.Deps{
		Trip:    tripSvc,
		Ride:    rideSvc,
		Source:  source,
		History: store,
		Hub:     ws.NewHub(),
	})
	return r, store
}

func doRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSetup_UnknownPlace(t *testing.T) {
	r, _ := buildTestRouter(t)
	w := doRequest(r, http.MethodPost, "/api/trips", map[string]any{
		"price_per_km": 2.0,
		"start":        "Nowhere12345xyz",
		"end":          "King's Cross",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSetup_InvalidPrice(t *testing.T) {
	r, _ := buildTestRouter(t)
	w := doRequest(r, http.MethodPost, "/api/trips", map[string]any{
		"price_per_km": 0,
		"start":        "Trafalgar Square",
		"end":          "King's Cross",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestStart_WithoutTrip(t *testing.T) {
	r, _ := buildTestRouter(t)
	w := doRequest(r, http.MethodPost, "/api/rides/start", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestStop_WithoutStart(t *testing.T) {
	r, _ := buildTestRouter(t)
	w := doRequest(r, http.MethodPost, "/api/rides/stop", map[string]any{"save": true})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestSetMode_Unknown(t *testing.T) {
	r, _ := buildTestRouter(t)
	w := doRequest(r, http.MethodPut, "/api/rides/mode", map[string]any{"mode": "teleport"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestLocation_OutOfRange(t *testing.T) {
	r, _ := buildTestRouter(t)
	w := doRequest(r, http.MethodPut, "/api/rides/location", map[string]any{"lat": 120.0, "lng": 0.0})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

// Full simulated ride over the API: setup, start, live view, stop with save,
// then list and clear history.
func TestRideFlow_EndToEnd(t *testing.T) {
	r, _ := buildTestRouter(t)

	w := doRequest(r, http.MethodPost, "/api/trips", map[string]any{
		"price_per_km": 2.0,
		"start":        "Trafalgar Square",
		"end":          "King's Cross",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("setup: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	if w := doRequest(r, http.MethodPost, "/api/rides/start", nil); w.Code != http.StatusOK {
		t.Fatalf("start: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Wait until the replay of the 3-point stub route is complete.
	deadline := time.Now().Add(time.Second)
	var snap ride.Snapshot
	for time.Now().Before(deadline) {
		w := doRequest(r, http.MethodGet, "/api/rides/live", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("live: expected 200, got %d", w.Code)
		}
		if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
			t.Fatalf("decode live view: %v", err)
		}
		if snap.Samples == 3 {
			break
		}
		time.Sleep(2 * time.Millisecond)
	}
	if snap.State != ride.StateActive || snap.Samples != 3 {
		t.Fatalf("live view = %+v, want active with 3 samples", snap)
	}

	w = doRequest(r, http.MethodPost, "/api/rides/stop", map[string]any{"save": true})
	if w.Code != http.StatusOK {
		t.Fatalf("stop: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var stopResp struct {
		Record history.Record `json:"record"`
		Saved  bool           `json:"saved"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stopResp); err != nil {
		t.Fatalf("decode stop response: %v", err)
	}
	if !stopResp.Saved || stopResp.Record.DistanceKm <= 0 {
		t.Fatalf("stop response = %+v", stopResp)
	}

	w = doRequest(r, http.MethodGet, "/api/history", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("history: expected 200, got %d", w.Code)
	}
	var listResp struct {
		Rides []history.Record `json:"rides"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(listResp.Rides) != 1 || listResp.Rides[0].ID != stopResp.Record.ID {
		t.Fatalf("history = %+v", listResp.Rides)
	}

	if w := doRequest(r, http.MethodDelete, "/api/history", nil); w.Code != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d", w.Code)
	}
	w = doRequest(r, http.MethodGet, "/api/history", nil)
	listResp.Rides = nil
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode history after clear: %v", err)
	}
	if len(listResp.Rides) != 0 {
		t.Fatalf("history after clear = %+v", listResp.Rides)
	}
}
