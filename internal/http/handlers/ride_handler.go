// README: Ride session handlers: start, stop, live view, mode toggle, device fixes.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ridetrack/internal/modules/ride"
	"ridetrack/internal/types"
)

type RideHandler struct {
	ride   *ride.Service
	source *ride.PushSource
}

func NewRideHandler(svc *ride.Service, source *ride.PushSource) *RideHandler {
	return &RideHandler{ride: svc, source: source}
}

func (h *RideHandler) Start(c *gin.Context) {
	if err := h.ride.Start(c.Request.Context()); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"state": ride.StateActive})
}

type stopReq struct {
	Save bool `json:"save"`
}

func (h *RideHandler) Stop(c *gin.Context) {
	// An absent body means discard.
	var req stopReq
	_ = c.ShouldBindJSON(&req)

	rec, err := h.ride.Stop(c.Request.Context(), req.Save)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"record": rec, "saved": req.Save})
}

func (h *RideHandler) Live(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.ride.Snapshot())
}

type modeReq struct {
	Mode string `json:"mode"`
}

func (h *RideHandler) SetMode(c *gin.Context) {
	var req modeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.ride.SetMode(ride.Mode(req.Mode)); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"mode": req.Mode})
}

type locationReq struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
	At  int64   `json:"timestamp_ms"`
}

// Location ingests one device fix for gps-mode sessions. Fixes without a
// timestamp get the server's clock.
func (h *RideHandler) Location(c *gin.Context) {
	var req locationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	p := types.Point{Lat: req.Lat, Lng: req.Lng}
	if !p.Valid() {
		writeError(c, http.StatusBadRequest, "coordinates out of range")
		return
	}
	at := time.Now()
	if req.At > 0 {
		at = time.UnixMilli(req.At)
	}
	h.source.Publish(ride.Fix{Position: p, At: at})
	writeJSON(c, http.StatusOK, map[string]any{"status": "ok"})
}
