package ports

import (
	"context"
	"time"

	"visit-schedule-service/internal/domain"
)

// PlaceCache persists text -> place identifier resolutions.
// Keys are expected to be normalized by the caller.
type PlaceCache interface {
	GetMany(ctx context.Context, texts []string) (map[string]string, error)
	PutMany(ctx context.Context, results map[string]string) error
}

// Identifies one cached leg duration.
type DurationKey struct {
	Origin      domain.LocationRef
	Destination domain.LocationRef
	Mode        domain.TravelMode
	AvoidTolls  bool
	DepartAt    time.Time
}

// DurationCache stores resolved leg durations. A miss is (0, false, nil).
type DurationCache interface {
	Get(ctx context.Context, key DurationKey) (seconds int, found bool, err error)
	Put(ctx context.Context, key DurationKey, seconds int) error
}
