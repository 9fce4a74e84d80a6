package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visit-schedule-service/internal/adapters/mockoracle"
	"visit-schedule-service/internal/domain"
)

func TestResolver_IdempotentForPlaceRefs(t *testing.T) {
	oracle := mockoracle.NewMockOracle(nil)
	r := NewLocationResolver(oracle, oracle, nil, time.Second)

	ref := domain.PlaceRef("ChIJ123")
	got := r.Resolve(context.Background(), string(ref))

	assert.Equal(t, ref, got)
	assert.Equal(t, ref, r.Resolve(context.Background(), string(got)))
	assert.Equal(t, 0, oracle.CallCount())
}

func TestResolver_GeocodeThenFindPlaceThenRaw(t *testing.T) {
	oracle := mockoracle.NewMockOracle(nil)
	oracle.Places["Tenjin"] = "geo-1"
	oracle.FindPlaces["Hakata Office"] = "find-1"
	r := NewLocationResolver(oracle, oracle, nil, time.Second)
	ctx := context.Background()

	assert.Equal(t, domain.PlaceRef("geo-1"), r.Resolve(ctx, "Tenjin"))
	assert.Equal(t, domain.PlaceRef("find-1"), r.Resolve(ctx, "Hakata Office"))
	assert.Equal(t, domain.LocationRef("  Nowhere  "), r.Resolve(ctx, "  Nowhere  "))

	assert.Equal(t, []string{
		"geocode:Tenjin",
		"geocode:Hakata Office",
		"findplace:Hakata Office",
		"geocode:Nowhere",
		"findplace:Nowhere",
	}, oracle.Calls)
}

func TestResolver_ServiceErrorsFallBackToText(t *testing.T) {
	oracle := mockoracle.NewMockOracle(nil)
	oracle.Down = true
	r := NewLocationResolver(oracle, oracle, nil, time.Second)

	assert.Equal(t, domain.LocationRef("Tenjin"), r.Resolve(context.Background(), "Tenjin"))
}

func TestResolver_EmptyText(t *testing.T) {
	oracle := mockoracle.NewMockOracle(nil)
	r := NewLocationResolver(oracle, oracle, nil, time.Second)

	assert.Equal(t, domain.LocationRef(""), r.Resolve(context.Background(), ""))
	assert.Equal(t, 0, oracle.CallCount())
}

func TestResolver_UsesAndFillsCache(t *testing.T) {
	oracle := mockoracle.NewMockOracle(nil)
	oracle.Places["Tenjin Station"] = "geo-2"
	cache := &memPlaceCache{m: map[string]string{"Cached Place": "cached-1"}}
	r := NewLocationResolver(oracle, oracle, cache, time.Second)
	ctx := context.Background()

	assert.Equal(t, domain.PlaceRef("cached-1"), r.Resolve(ctx, "Cached   Place"))
	assert.Equal(t, 0, oracle.CallCount())

	assert.Equal(t, domain.PlaceRef("geo-2"), r.Resolve(ctx, " Tenjin  Station "))
	assert.Equal(t, "geo-2", cache.m["Tenjin Station"])

	assert.Equal(t, domain.PlaceRef("geo-2"), r.Resolve(ctx, "Tenjin Station"))
	assert.Equal(t, 1, oracle.CallCount())
}

func TestResolver_CacheFailuresAreMisses(t *testing.T) {
	oracle := mockoracle.NewMockOracle(nil)
	oracle.Places["Tenjin"] = "geo-1"
	cache := &memPlaceCache{m: map[string]string{}, getErr: errors.New("db down"), putErr: errors.New("db down")}
	r := NewLocationResolver(oracle, oracle, cache, time.Second)

	assert.Equal(t, domain.PlaceRef("geo-1"), r.Resolve(context.Background(), "Tenjin"))
	assert.Equal(t, 1, cache.puts)
}

func TestResolver_ConcurrentUse(t *testing.T) {
	oracle := mockoracle.NewMockOracle(nil)
	oracle.Places["Tenjin"] = "geo-1"
	r := NewLocationResolver(oracle, oracle, nil, time.Second)

	var wg sync.WaitGroup
	results := make([]domain.LocationRef, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.Resolve(context.Background(), "Tenjin")
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		require.Equal(t, domain.PlaceRef("geo-1"), got)
	}
}

// ctxGeocoder fails once its context is done.
type ctxGeocoder struct{ id string }

func (g ctxGeocoder) Geocode(ctx context.Context, _ string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	return g.id, true, nil
}

func TestResolver_SharedLookupOutlivesCallerCancellation(t *testing.T) {
	r := NewLocationResolver(ctxGeocoder{id: "geo-1"}, nil, nil, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, domain.PlaceRef("geo-1"), r.Resolve(ctx, "Tenjin"))
}
