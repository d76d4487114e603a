// README: Position sampler strategies: route replay (simulate) and filtered device fixes (gps).
package ride

import (
	"context"
	"sync"
	"time"

	"ridetrack/internal/types"
)

// Sampler is a cancellable subscription producing position samples. Stop is
// idempotent and safe to call on a sampler that never started; only the
// session state machine starts or stops one.
type Sampler interface {
	Start(ctx context.Context, emit func(Sample)) error
	Stop()
}

// SimSampler replays a planned route at a fixed wall-clock cadence, one
// point per tick, stamping each sample with the tick time. Reaching the end
// of the route stops emission but leaves the subscription valid: the
// operator must still stop the session explicitly.
type SimSampler struct {
	route    []types.Point
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewSimSampler(route []types.Point, interval time.Duration) *SimSampler {
	// Copy so later mutation of the caller's slice cannot leak into an
	// active replay.
	r := make([]types.Point, len(route))
	copy(r, route)
	return &SimSampler{route: r, interval: interval}
}

func (s *SimSampler) Start(ctx context.Context, emit func(Sample)) error {
	if len(s.route) == 0 {
		return ErrNoRoute
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return ErrSamplerRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for i := 0; i < len(s.route); {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				emit(Sample{Position: s.route[i], At: t})
				i++
			}
		}
		// Route exhausted: stay subscribed but idle until Stop.
		<-ctx.Done()
	}()
	return nil
}

func (s *SimSampler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Fix is one position report from a device location provider.
type Fix struct {
	Position types.Point
	At       time.Time
}

// LocationSource abstracts the device location provider. Subscribe fails if
// the provider is unavailable (e.g. permission denied); that failure is
// reported once and leaves the simulate strategy usable.
type LocationSource interface {
	Subscribe(ctx context.Context) (<-chan Fix, error)
}

// GPSSampler subscribes to a LocationSource and forwards fixes that clear
// both a minimum temporal interval and a minimum displacement since the last
// accepted fix, bounding update rate and position noise. Samples carry the
// provider's own timestamp.
type GPSSampler struct {
	source            LocationSource
	minInterval       time.Duration
	minDisplacementKm float64

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewGPSSampler(source LocationSource, minInterval time.Duration, minDisplacementKm float64) *GPSSampler {
	return &GPSSampler{
		source:            source,
		minInterval:       minInterval,
		minDisplacementKm: minDisplacementKm,
	}
}

func (s *GPSSampler) Start(ctx context.Context, emit func(Sample)) error {
	if s.source == nil {
		return ErrNoSource
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return ErrSamplerRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	ch, err := s.source.Subscribe(ctx)
	if err != nil {
		cancel()
		return err
	}
	s.cancel = cancel

	go func() {
		var last *Sample
		for {
			select {
			case <-ctx.Done():
				return
			case fix, ok := <-ch:
				if !ok {
					return
				}
				if last != nil {
					if fix.At.Sub(last.At) < s.minInterval {
						continue
					}
					d := haversineKm(last.Position.Lat, last.Position.Lng, fix.Position.Lat, fix.Position.Lng)
					if d < s.minDisplacementKm {
						continue
					}
				}
				sample := Sample{Position: fix.Position, At: fix.At}
				emit(sample)
				last = &sample
			}
		}
	}()
	return nil
}

func (s *GPSSampler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
