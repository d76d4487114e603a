// README: HTTP router registration.
package http

import (
	"github.com/gin-gonic/gin"

	"ridetrack/internal/http/handlers"
	"ridetrack/internal/http/middleware"
	"ridetrack/internal/http/ws"
	"ridetrack/internal/modules/history"
	"ridetrack/internal/modules/ride"
	"ridetrack/internal/modules/trip"
)

type Deps struct {
	Trip    *trip.Service
	Ride    *ride.Service
	Source  *ride.PushSource
	History history.Store
	Hub     *ws.Hub
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	tripHandler := handlers.NewTripHandler(deps.Trip, deps.Ride)
	r.POST("/api/trips/resolve", tripHandler.Resolve)
	r.POST("/api/trips/plan", tripHandler.Plan)
	r.POST("/api/trips", tripHandler.Setup)

	rideHandler := handlers.NewRideHandler(deps.Ride, deps.Source)
	r.POST("/api/rides/start", rideHandler.Start)
	r.POST("/api/rides/stop", rideHandler.Stop)
	r.GET("/api/rides/live", rideHandler.Live)
	r.PUT("/api/rides/mode", rideHandler.SetMode)
	r.PUT("/api/rides/location", rideHandler.Location)

	historyHandler := handlers.NewHistoryHandler(deps.History)
	r.GET("/api/history", historyHandler.List)
	r.DELETE("/api/history", historyHandler.Clear)

	streamHandler := handlers.NewStreamHandler(deps.Hub)
	r.GET("/ws/rides/live", streamHandler.Live)

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	return r
}
