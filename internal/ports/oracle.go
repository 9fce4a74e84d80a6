package ports

import (
	"context"
	"time"

	"visit-schedule-service/internal/domain"
)

// Parameters shared by every directions / distance matrix request.
type RouteQuery struct {
	Origin      domain.LocationRef
	Destination domain.LocationRef
	Mode        domain.TravelMode
	DepartAt    time.Time
	AvoidTolls  bool
	// RoutingPreference is forwarded for transit ("fewer_transfers").
	RoutingPreference string
	Alternatives      bool
}

// One step of a route; transit steps carry the line they ride.
type RouteStep struct {
	TravelMode string
	LineName   string
}

// One route returned by the directions backend.
type Route struct {
	Summary         string
	DurationSeconds int
	DepartText      string
	ArriveText      string
	Steps           []RouteStep
}

// Geocoder maps free-form text to a backend place identifier.
// A miss is reported as ("", false, nil); transport failures as an error.
type Geocoder interface {
	Geocode(ctx context.Context, text string) (placeID string, found bool, err error)
}

// PlaceFinder is the secondary "find place from text" search.
type PlaceFinder interface {
	FindPlace(ctx context.Context, text string) (placeID string, found bool, err error)
}

// DirectionsProvider returns zero or more routes for a query.
// An empty slice with a nil error means "no route".
type DirectionsProvider interface {
	Directions(ctx context.Context, q RouteQuery) ([]Route, error)
}

// DistanceMatrixProvider is the last-resort single-cell duration lookup.
type DistanceMatrixProvider interface {
	DistanceMatrix(ctx context.Context, q RouteQuery) (seconds int, found bool, err error)
}

// Oracle bundles every capability of the Location & Duration Oracle.
type Oracle interface {
	Geocoder
	PlaceFinder
	DirectionsProvider
	DistanceMatrixProvider
}
