// README: Ride session state machine: lifecycle transitions, live ticker, final record.
package ride

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"ridetrack/internal/modules/history"
	"ridetrack/internal/modules/trip"
)

var (
	ErrInvalidState   = errors.New("invalid session state transition")
	ErrInvalidMode    = errors.New("unknown sampling mode")
	ErrNoTrip         = errors.New("no trip configured")
	ErrNoRoute        = errors.New("no planned route available")
	ErrNoSource       = errors.New("no location source available")
	ErrSamplerRunning = errors.New("sampler already running")
)

type Options struct {
	TickInterval         time.Duration
	SimInterval          time.Duration
	GPSMinInterval       time.Duration
	GPSMinDisplacementKm float64
}

func (o Options) withDefaults() Options {
	if o.TickInterval <= 0 {
		o.TickInterval = time.Second
	}
	if o.SimInterval <= 0 {
		o.SimInterval = time.Second
	}
	if o.GPSMinInterval < 0 {
		o.GPSMinInterval = 0
	}
	if o.GPSMinDisplacementKm < 0 {
		o.GPSMinDisplacementKm = 0
	}
	return o
}

// Service owns the single active session. All mutation happens under one
// mutex; no transition runs concurrently with another.
type Service struct {
	history history.Store
	source  LocationSource
	opts    Options
	notify  func(Snapshot)

	mu        sync.Mutex
	state     State
	mode      Mode
	cfg       *trip.Config
	route     trip.Route
	samples   []Sample
	startedAt time.Time
	sampler   Sampler
	teardown  context.CancelFunc
}

func NewService(store history.Store, source LocationSource, opts Options) *Service {
	return &Service{
		history: store,
		source:  source,
		opts:    opts.withDefaults(),
		state:   StateIdle,
		mode:    ModeSimulate,
	}
}

// SetNotify registers the live-view broadcast hook. Wiring-time only, before
// any session starts.
func (s *Service) SetNotify(fn func(Snapshot)) {
	s.notify = fn
}

// Configure installs the trip the next session will track. Only valid while
// idle; the config is immutable for the lifetime of the session.
func (s *Service) Configure(cfg trip.Config, route trip.Route) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return ErrInvalidState
	}
	c := cfg
	s.cfg = &c
	s.route = route
	return nil
}

// SetMode switches the sampling strategy. Toggling during an active session
// is disallowed.
func (s *Service) SetMode(m Mode) error {
	if m != ModeSimulate && m != ModeGPS {
		return ErrInvalidMode
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return ErrInvalidState
	}
	s.mode = m
	return nil
}

func (s *Service) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Start transitions Idle -> Active: clears samples, stamps the start time,
// and launches the sampler and the live ticker. Simulation with no planned
// route is rejected and the machine stays idle.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !CanTransition(s.state, StateActive) {
		return ErrInvalidState
	}
	if s.cfg == nil {
		return ErrNoTrip
	}

	var sampler Sampler
	switch s.mode {
	case ModeSimulate:
		if len(s.route) == 0 {
			return ErrNoRoute
		}
		sampler = NewSimSampler(s.route, s.opts.SimInterval)
	case ModeGPS:
		sampler = NewGPSSampler(s.source, s.opts.GPSMinInterval, s.opts.GPSMinDisplacementKm)
	default:
		return ErrInvalidMode
	}

	// The session outlives the start request, so it gets its own context.
	// Cancelling it tears down both the sampler subscription and the live
	// ticker on every exit path.
	runCtx, cancel := context.WithCancel(context.Background())
	if err := sampler.Start(runCtx, s.appendSample); err != nil {
		cancel()
		return err
	}

	s.sampler = sampler
	s.teardown = cancel
	s.samples = nil
	s.startedAt = time.Now()
	s.state = StateActive

	go s.runTicker(runCtx)
	return nil
}

// appendSample is the emit callback handed to the sampler. Samples arriving
// after the session left Active (a late replay tick racing Stop) are
// discarded so they cannot mutate a finished session.
func (s *Service) appendSample(sample Sample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return
	}
	if n := len(s.samples); n > 0 && sample.At.Before(s.samples[n-1].At) {
		return
	}
	s.samples = append(s.samples, sample)
}

// runTicker drives the periodic live update. The tick is observational: it
// never gates correctness of the final record.
func (s *Service) runTicker(ctx context.Context) {
	ticker := time.NewTicker(s.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap, active := s.liveSnapshot()
			if active && s.notify != nil {
				s.notify(snap)
			}
		}
	}
}

func (s *Service) liveSnapshot() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(), s.state == StateActive
}

// Snapshot returns the current live view. Distance and price are recomputed
// over the full sample history; trips are short enough that this stays
// cheap.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Service) snapshotLocked() Snapshot {
	snap := Snapshot{State: s.state, Mode: s.mode, Elapsed: "0m 00s"}
	if s.state != StateActive {
		return snap
	}
	snap.Elapsed = formatElapsed(time.Since(s.startedAt))
	snap.DistanceKm = PathDistanceKm(s.samples)
	if s.cfg != nil {
		snap.Price = Fare(snap.DistanceKm, s.cfg.PricePerKm)
	}
	snap.Samples = len(s.samples)
	if n := len(s.samples); n > 0 {
		snap.Position = s.samples[n-1].Position
	}
	return snap
}

// Stop transitions Active -> Completed, then resets the machine to Idle for
// the next trip. The final distance and price are recomputed from the full
// sample set rather than reusing a possibly stale tick value. Fewer than two
// samples is a valid zero-distance, zero-price ride. The record is persisted
// only when save is true; discard is equally terminal.
func (s *Service) Stop(ctx context.Context, save bool) (history.Record, error) {
	s.mu.Lock()
	if !CanTransition(s.state, StateCompleted) {
		s.mu.Unlock()
		return history.Record{}, ErrInvalidState
	}

	s.sampler.Stop()
	s.teardown()
	s.sampler = nil
	s.teardown = nil
	s.state = StateCompleted

	distance := PathDistanceKm(s.samples)
	price := Fare(distance, s.cfg.PricePerKm)
	rec := history.Record{
		ID:            uuid.NewString(),
		Date:          time.Now().Format("02 Jan 2006 15:04"),
		StartLocation: s.cfg.StartLabel,
		EndLocation:   s.cfg.EndLabel,
		Duration:      formatElapsed(time.Since(s.startedAt)),
		DistanceKm:    distance,
		Price:         price,
	}

	// Session consumed: drop its mutable fields and return to Idle. The
	// trip config stays so the same trip can be ridden again.
	s.samples = nil
	s.startedAt = time.Time{}
	s.state = StateIdle
	s.mu.Unlock()

	if save && s.history != nil {
		if err := s.history.Save(ctx, rec); err != nil {
			return rec, fmt.Errorf("save ride record: %w", err)
		}
	}
	return rec, nil
}

// formatElapsed renders minutes plus zero-padded seconds, e.g. "4m 05s".
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%dm %02ds", total/60, total%60)
}
