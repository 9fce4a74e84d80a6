package services

import (
	"context"
	"log"
	"time"

	"visit-schedule-service/internal/domain"
	"visit-schedule-service/internal/ports"
)

// DefaultCallTimeout bounds each outbound oracle round-trip.
const DefaultCallTimeout = 15 * time.Second

// Describes one leg for duration lookup: the raw text of both endpoints and
// their resolved references (which equal the raw text when resolution missed).
type LegRequest struct {
	OriginText      string
	DestinationText string
	Origin          domain.LocationRef
	Destination     domain.LocationRef
	Mode            domain.TravelMode
	DepartAt        time.Time
	AvoidTolls      bool
}

// attempt is one strategy in the fallback chain.
type attempt struct {
	name string
	run  func(ctx context.Context) (seconds int, found bool, err error)
}

// firstSuccess runs attempts in order and returns the first usable duration.
// A failing or empty attempt only moves the chain on; the first success wins
// even if a later strategy would answer differently.
func firstSuccess(ctx context.Context, timeout time.Duration, attempts []attempt) (int, string, bool) {
	for _, a := range attempts {
		seconds, found, err := callWithTimeout(ctx, timeout, a.run)
		if err != nil {
			log.Printf("duration attempt failed: strategy=%s err=%v", a.name, err)
			continue
		}
		if found && seconds >= 0 {
			return seconds, a.name, true
		}
	}
	return 0, "", false
}

// DurationOracle estimates leg travel durations with an ordered fallback chain:
//  1. directions with the resolved references
//  2. directions with the raw text of both endpoints
//  3. directions mixed: resolved origin/raw destination, then raw origin/resolved destination
//  4. distance matrix with the resolved references
//
// Directions attempts that would repeat an earlier (origin, destination) pair
// are skipped. Resolved durations are cached when a DurationCache is set.
type DurationOracle struct {
	directions ports.DirectionsProvider
	matrix     ports.DistanceMatrixProvider
	cache      ports.DurationCache
	timeout    time.Duration
}

// NewDurationOracle builds the client. matrix and cache may be nil.
func NewDurationOracle(
	directions ports.DirectionsProvider,
	matrix ports.DistanceMatrixProvider,
	cache ports.DurationCache,
	timeout time.Duration,
) *DurationOracle {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &DurationOracle{
		directions: directions,
		matrix:     matrix,
		cache:      cache,
		timeout:    timeout,
	}
}

// GetDuration returns the leg duration in seconds; ok is false when every
// strategy failed (the leg is unresolved).
func (o *DurationOracle) GetDuration(ctx context.Context, leg LegRequest) (seconds int, ok bool) {
	if leg.Origin == "" {
		leg.Origin = domain.LocationRef(leg.OriginText)
	}
	if leg.Destination == "" {
		leg.Destination = domain.LocationRef(leg.DestinationText)
	}

	key := ports.DurationKey{
		Origin:      leg.Origin,
		Destination: leg.Destination,
		Mode:        leg.Mode,
		AvoidTolls:  leg.AvoidTolls && leg.Mode == domain.ModeDriving,
		DepartAt:    leg.DepartAt,
	}

	if o.cache != nil {
		s, found, err := o.cache.Get(ctx, key)
		if err != nil {
			log.Printf("duration cache read failed: origin=%q destination=%q err=%v", leg.Origin, leg.Destination, err)
		} else if found {
			return s, true
		}
	}

	seconds, strategy, ok := firstSuccess(ctx, o.timeout, o.chain(leg))
	if !ok {
		log.Printf("duration unavailable: origin=%q destination=%q mode=%s", leg.OriginText, leg.DestinationText, leg.Mode)
		return 0, false
	}
	log.Printf("duration resolved: origin=%q destination=%q strategy=%s seconds=%d", leg.OriginText, leg.DestinationText, strategy, seconds)

	if o.cache != nil {
		if err := o.cache.Put(ctx, key, seconds); err != nil {
			log.Printf("duration cache write failed: origin=%q destination=%q err=%v", leg.Origin, leg.Destination, err)
		}
	}

	return seconds, true
}

func (o *DurationOracle) chain(leg LegRequest) []attempt {
	rawOrigin := domain.LocationRef(leg.OriginText)
	rawDest := domain.LocationRef(leg.DestinationText)

	pairs := []struct {
		name        string
		origin      domain.LocationRef
		destination domain.LocationRef
	}{
		{"directions", leg.Origin, leg.Destination},
		{"directions_raw", rawOrigin, rawDest},
		{"directions_resolved_origin", leg.Origin, rawDest},
		{"directions_resolved_destination", rawOrigin, leg.Destination},
	}

	attempts := make([]attempt, 0, len(pairs)+1)
	if o.directions != nil {
		seen := make(map[string]struct{}, len(pairs))
		for _, p := range pairs {
			if p.origin == "" || p.destination == "" {
				continue
			}
			k := string(p.origin) + "|" + string(p.destination)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}

			q := o.query(leg, p.origin, p.destination)
			attempts = append(attempts, attempt{
				name: p.name,
				run: func(ctx context.Context) (int, bool, error) {
					routes, err := o.directions.Directions(ctx, q)
					if err != nil || len(routes) == 0 {
						return 0, false, err
					}
					return routes[0].DurationSeconds, true, nil
				},
			})
		}
	}

	if o.matrix != nil {
		q := o.query(leg, leg.Origin, leg.Destination)
		attempts = append(attempts, attempt{
			name: "distance_matrix",
			run: func(ctx context.Context) (int, bool, error) {
				return o.matrix.DistanceMatrix(ctx, q)
			},
		})
	}

	return attempts
}

func (o *DurationOracle) query(leg LegRequest, origin, destination domain.LocationRef) ports.RouteQuery {
	q := ports.RouteQuery{
		Origin:      origin,
		Destination: destination,
		Mode:        leg.Mode,
		DepartAt:    leg.DepartAt,
		AvoidTolls:  leg.AvoidTolls && leg.Mode == domain.ModeDriving,
	}
	if leg.Mode == domain.ModeTransit {
		q.RoutingPreference = domain.TransitRoutingPreference
	}
	return q
}
