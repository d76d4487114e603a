// README: Trip setup handlers: resolve, plan, full setup.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridetrack/internal/modules/ride"
	"ridetrack/internal/modules/trip"
	"ridetrack/internal/types"
)

type TripHandler struct {
	trip *trip.Service
	ride *ride.Service
}

func NewTripHandler(tripSvc *trip.Service, rideSvc *ride.Service) *TripHandler {
	return &TripHandler{trip: tripSvc, ride: rideSvc}
}

type resolveReq struct {
	Query string `json:"query"`
}

func (h *TripHandler) Resolve(c *gin.Context) {
	var req resolveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	candidate, err := h.trip.Resolve(c.Request.Context(), req.Query)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{
		"display_name": candidate.DisplayName,
		"position":     candidate.Position,
	})
}

type planReq struct {
	Start types.Point `json:"start"`
	End   types.Point `json:"end"`
}

func (h *TripHandler) Plan(c *gin.Context) {
	var req planReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !req.Start.Valid() || !req.End.Valid() {
		writeError(c, http.StatusBadRequest, "coordinates out of range")
		return
	}
	route := h.trip.Plan(c.Request.Context(), req.Start, req.End)
	writeJSON(c, http.StatusOK, map[string]any{"route": route})
}

type setupReq struct {
	PricePerKm float64 `json:"price_per_km"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
}

// Setup runs the full trip-setup flow and installs the result on the session
// machine: resolve both endpoints, plan the route, configure the ride.
func (h *TripHandler) Setup(c *gin.Context) {
	var req setupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cfg, route, err := h.trip.Setup(c.Request.Context(), trip.SetupRequest{
		PricePerKm: req.PricePerKm,
		StartQuery: req.Start,
		EndQuery:   req.End,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if err := h.ride.Configure(cfg, route); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, map[string]any{
		"start_label":  cfg.StartLabel,
		"end_label":    cfg.EndLabel,
		"price_per_km": cfg.PricePerKm,
		"route":        route,
	})
}
