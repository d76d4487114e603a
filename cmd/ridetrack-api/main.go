// README: Entry point; loads config, wires trip providers and the session engine, starts the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ridetrack/internal/config"
	httptransport "ridetrack/internal/http"
	"ridetrack/internal/http/ws"
	"ridetrack/internal/infra"
	"ridetrack/internal/modules/history"
	"ridetrack/internal/modules/ride"
	"ridetrack/internal/modules/trip"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		geocoder trip.Geocoder
		planner  trip.Planner
	)
	switch cfg.Trip.Provider {
	case "google":
		if cfg.Trip.GoogleKey == "" {
			log.Fatal("GOOGLE_MAPS_API_KEY is required for the google provider")
		}
		provider, err := trip.NewGoogleProvider(cfg.Trip.GoogleKey)
		if err != nil {
			log.Fatalf("google provider: %v", err)
		}
		geocoder, planner = provider, provider
	default:
		geocoder = trip.NewNominatimGeocoder(cfg.Trip.NominatimURL)
		planner = trip.NewOSRMPlanner(cfg.Trip.OSRMURL)
	}
	tripSvc := trip.NewService(geocoder, planner)

	var store history.Store
	switch cfg.History.Backend {
	case "postgres":
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer pool.Close()
		store = history.NewPostgresStore(pool)
	case "redis":
		client := infra.NewRedis(cfg.Redis.Addr)
		if client == nil {
			log.Fatal("RIDETRACK_REDIS_ADDR is required for the redis backend")
		}
		store = history.NewRedisStore(client)
	default:
		store = history.NewMemoryStore()
	}

	source := ride.NewPushSource()
	rideSvc := ride.NewService(store, source, ride.Options{
		TickInterval:         time.Duration(cfg.Ride.TickSeconds) * time.Second,
		SimInterval:          time.Duration(cfg.Ride.SimIntervalSeconds) * time.Second,
		GPSMinInterval:       time.Duration(cfg.Ride.GPSMinIntervalSecs) * time.Second,
		GPSMinDisplacementKm: cfg.Ride.GPSMinDisplacementKm,
	})

	hub := ws.NewHub()
	rideSvc.SetNotify(func(snap ride.Snapshot) {
		data, err := json.Marshal(snap)
		if err != nil {
			return
		}
		hub.Broadcast(data)
	})

	router := httptransport.NewRouter(httptransport.Deps{
		Trip:    tripSvc,
		Ride:    rideSvc,
		Source:  source,
		History: store,
		Hub:     hub,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
