package services

import (
	"context"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"visit-schedule-service/internal/domain"
	"visit-schedule-service/internal/ports"
)

// LocationResolver turns free-form location text into a stable place reference.
//
// Order of attempts:
//   - text that already is a place reference is returned unchanged
//   - persistent place cache
//   - geocoding
//   - "find place from text"
//
// When all of them miss or fail the original text is returned verbatim, so
// callers can keep working on raw text. Resolve never returns an error.
type LocationResolver struct {
	geocoder ports.Geocoder
	finder   ports.PlaceFinder
	cache    ports.PlaceCache
	timeout  time.Duration

	group singleflight.Group
}

// NewLocationResolver builds a resolver. Any collaborator may be nil.
func NewLocationResolver(
	geocoder ports.Geocoder,
	finder ports.PlaceFinder,
	cache ports.PlaceCache,
	timeout time.Duration,
) *LocationResolver {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &LocationResolver{
		geocoder: geocoder,
		finder:   finder,
		cache:    cache,
		timeout:  timeout,
	}
}

// normalize collapses whitespace so cache keys are consistent.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (r *LocationResolver) Resolve(ctx context.Context, text string) domain.LocationRef {
	ref := domain.LocationRef(text)
	if ref.IsPlace() {
		return ref
	}

	key := normalize(text)
	if key == "" {
		return ref
	}

	if r.cache != nil {
		hits, err := r.cache.GetMany(ctx, []string{key})
		if err != nil {
			log.Printf("place cache read failed: text=%q err=%v", key, err)
		} else if id, ok := hits[key]; ok && id != "" {
			return domain.PlaceRef(id)
		}
	}

	// Concurrent sessions resolving the same text share one lookup, which
	// must not be cut short when the first caller goes away.
	shared := context.WithoutCancel(ctx)
	v, _, _ := r.group.Do(key, func() (any, error) {
		return r.lookup(shared, key), nil
	})
	id, _ := v.(string)
	if id == "" {
		return ref
	}

	if r.cache != nil {
		if err := r.cache.PutMany(ctx, map[string]string{key: id}); err != nil {
			log.Printf("place cache write failed: text=%q err=%v", key, err)
		}
	}

	return domain.PlaceRef(id)
}

// lookup runs geocoding, then find-place. Errors are treated as misses.
func (r *LocationResolver) lookup(ctx context.Context, text string) string {
	if r.geocoder != nil {
		id, found, err := callWithTimeout(ctx, r.timeout, func(ctx context.Context) (string, bool, error) {
			return r.geocoder.Geocode(ctx, text)
		})
		if err != nil {
			log.Printf("resolve: geocode failed: text=%q err=%v", text, err)
		} else if found && id != "" {
			return id
		}
	}

	if r.finder != nil {
		id, found, err := callWithTimeout(ctx, r.timeout, func(ctx context.Context) (string, bool, error) {
			return r.finder.FindPlace(ctx, text)
		})
		if err != nil {
			log.Printf("resolve: find place failed: text=%q err=%v", text, err)
		} else if found && id != "" {
			return id
		}
	}

	log.Printf("resolve: no match, using raw text: text=%q", text)
	return ""
}

// callWithTimeout bounds a single oracle round-trip.
func callWithTimeout[T any](
	ctx context.Context,
	timeout time.Duration,
	fn func(ctx context.Context) (T, bool, error),
) (T, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(ctx)
}
