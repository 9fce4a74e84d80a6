package services

import (
	"context"
	"sync"
	"time"

	"visit-schedule-service/internal/ports"
)

// fakeDirections is a hand-written test double for ports.DirectionsProvider.
type fakeDirections struct {
	directions func(ctx context.Context, q ports.RouteQuery) ([]ports.Route, error)

	mu      sync.Mutex
	queries []ports.RouteQuery
}

func (f *fakeDirections) Directions(ctx context.Context, q ports.RouteQuery) ([]ports.Route, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	return f.directions(ctx, q)
}

// fakeMatrix is a hand-written test double for ports.DistanceMatrixProvider.
type fakeMatrix struct {
	matrix  func(ctx context.Context, q ports.RouteQuery) (int, bool, error)
	queries []ports.RouteQuery
}

func (f *fakeMatrix) DistanceMatrix(ctx context.Context, q ports.RouteQuery) (int, bool, error) {
	f.queries = append(f.queries, q)
	return f.matrix(ctx, q)
}

// memPlaceCache is an in-memory ports.PlaceCache.
type memPlaceCache struct {
	m      map[string]string
	getErr error
	putErr error
	puts   int
}

func (c *memPlaceCache) GetMany(_ context.Context, texts []string) (map[string]string, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	out := map[string]string{}
	for _, t := range texts {
		if v, ok := c.m[t]; ok {
			out[t] = v
		}
	}
	return out, nil
}

func (c *memPlaceCache) PutMany(_ context.Context, results map[string]string) error {
	c.puts++
	if c.putErr != nil {
		return c.putErr
	}
	for k, v := range results {
		c.m[k] = v
	}
	return nil
}

// memDurationCache is an in-memory ports.DurationCache.
type memDurationCache struct {
	m map[ports.DurationKey]int
}

func (c *memDurationCache) Get(_ context.Context, key ports.DurationKey) (int, bool, error) {
	s, ok := c.m[key]
	return s, ok, nil
}

func (c *memDurationCache) Put(_ context.Context, key ports.DurationKey, seconds int) error {
	c.m[key] = seconds
	return nil
}

// memOriginRepo is an in-memory ports.OriginRepository.
type memOriginRepo struct {
	mu      sync.Mutex
	origins []string
	saved   []string
	listErr error
	saveErr error
}

func (r *memOriginRepo) ListOrigins(_ context.Context, limit int) ([]string, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	if len(r.origins) > limit {
		return r.origins[:limit], nil
	}
	return r.origins, nil
}

func (r *memOriginRepo) SaveOrigin(_ context.Context, origin string, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, origin)
	return r.saveErr
}

var (
	_ ports.DirectionsProvider     = (*fakeDirections)(nil)
	_ ports.DistanceMatrixProvider = (*fakeMatrix)(nil)
	_ ports.PlaceCache             = (*memPlaceCache)(nil)
	_ ports.DurationCache          = (*memDurationCache)(nil)
	_ ports.OriginRepository       = (*memOriginRepo)(nil)
)
