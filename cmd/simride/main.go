// README: Offline demo; replays an interpolated route through a full simulated session and prints the record.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/kr/pretty"

	"ridetrack/internal/modules/history"
	"ridetrack/internal/modules/ride"
	"ridetrack/internal/modules/trip"
	"ridetrack/internal/types"
)

func main() {
	from := flag.String("from", "51.5074,-0.1278", "start coordinate as lat,lng")
	to := flag.String("to", "51.5174,-0.1178", "end coordinate as lat,lng")
	rate := flag.Float64("rate", 2.0, "price per kilometre")
	points := flag.Int("points", 20, "number of interpolated route points")
	tick := flag.Duration("tick", 50*time.Millisecond, "replay and live-update interval")
	flag.Parse()

	start, err := parsePoint(*from)
	if err != nil {
		log.Fatalf("-from: %v", err)
	}
	end, err := parsePoint(*to)
	if err != nil {
		log.Fatalf("-to: %v", err)
	}

	route := interpolate(start, end, *points)
	store := history.NewMemoryStore()
	svc := ride.NewService(store, nil, ride.Options{
		TickInterval: *tick,
		SimInterval:  *tick,
	})

	cfg := trip.Config{
		PricePerKm: *rate,
		Start:      start,
		End:        end,
		StartLabel: "Origin " + *from,
		EndLabel:   "Destination " + *to,
	}
	if err := svc.Configure(cfg, route); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if err := svc.Start(ctx); err != nil {
		log.Fatal(err)
	}

	deadline := time.Now().Add(time.Duration(*points+10) * *tick)
	for svc.Snapshot().Samples < *points && time.Now().Before(deadline) {
		time.Sleep(*tick)
	}

	rec, err := svc.Stop(ctx, true)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("completed ride:")
	pretty.Println(rec)

	rides, err := store.List(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("history now holds %d ride(s)\n", len(rides))
}

func parsePoint(s string) (types.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return types.Point{}, fmt.Errorf("want lat,lng, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return types.Point{}, err
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return types.Point{}, err
	}
	p := types.Point{Lat: lat, Lng: lng}
	if !p.Valid() {
		return types.Point{}, fmt.Errorf("coordinates out of range: %q", s)
	}
	return p, nil
}

func interpolate(a, b types.Point, n int) trip.Route {
	if n < 2 {
		n = 2
	}
	route := make(trip.Route, 0, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		route = append(route, types.Point{
			Lat: a.Lat + (b.Lat-a.Lat)*t,
			Lng: a.Lng + (b.Lng-a.Lng)*t,
		})
	}
	return route
}
