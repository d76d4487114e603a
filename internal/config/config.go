// README: Config loader with env defaults for HTTP, storage backends, trip providers, and session timing.
package config

import (
	"os"
	"strconv"
)

type RideConfig struct {
	TickSeconds          int
	SimIntervalSeconds   int
	GPSMinIntervalSecs   int
	GPSMinDisplacementKm float64
}

type TripConfig struct {
	Provider     string // "osm" or "google"
	NominatimURL string
	OSRMURL      string
	GoogleKey    string
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	History struct {
		Backend string // "memory", "redis" or "postgres"
	}
	Trip TripConfig
	Ride RideConfig
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("RIDETRACK_HTTP_ADDR", ":8080")
	cfg.DB.DSN = envOrDefault("RIDETRACK_DB_DSN", "")
	cfg.Redis.Addr = envOrDefault("RIDETRACK_REDIS_ADDR", "")
	cfg.History.Backend = envOrDefault("RIDETRACK_HISTORY_BACKEND", "memory")
	cfg.Trip.Provider = envOrDefault("RIDETRACK_TRIP_PROVIDER", "osm")
	cfg.Trip.NominatimURL = envOrDefault("RIDETRACK_NOMINATIM_URL", "https://nominatim.openstreetmap.org")
	cfg.Trip.OSRMURL = envOrDefault("RIDETRACK_OSRM_URL", "https://router.project-osrm.org")
	cfg.Trip.GoogleKey = envOrDefault("GOOGLE_MAPS_API_KEY", "")
	cfg.Ride.TickSeconds = envOrDefaultInt("RIDETRACK_TICK_SECONDS", 1)
	cfg.Ride.SimIntervalSeconds = envOrDefaultInt("RIDETRACK_SIM_INTERVAL_SECONDS", 1)
	cfg.Ride.GPSMinIntervalSecs = envOrDefaultInt("RIDETRACK_GPS_MIN_INTERVAL_SECONDS", 1)
	cfg.Ride.GPSMinDisplacementKm = envOrDefaultFloat("RIDETRACK_GPS_MIN_DISPLACEMENT_KM", 0.005)
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}
