package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visit-schedule-service/internal/domain"
	"visit-schedule-service/internal/ports"
)

func routeTable(table map[string]int, fail map[string]error) func(context.Context, ports.RouteQuery) ([]ports.Route, error) {
	return func(_ context.Context, q ports.RouteQuery) ([]ports.Route, error) {
		key := string(q.Origin) + "|" + string(q.Destination)
		if err, ok := fail[key]; ok {
			return nil, err
		}
		if s, ok := table[key]; ok {
			return []ports.Route{{DurationSeconds: s}}, nil
		}
		return nil, nil
	}
}

func pairs(qs []ports.RouteQuery) []string {
	out := make([]string, 0, len(qs))
	for _, q := range qs {
		out = append(out, string(q.Origin)+"|"+string(q.Destination))
	}
	return out
}

func resolvedLeg() LegRequest {
	return LegRequest{
		OriginText:      "Station A",
		DestinationText: "Office B",
		Origin:          domain.PlaceRef("a"),
		Destination:     domain.PlaceRef("b"),
		Mode:            domain.ModeDriving,
		DepartAt:        time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestDurationOracle_PrimarySucceeds(t *testing.T) {
	dir := &fakeDirections{directions: routeTable(map[string]int{"place_id:a|place_id:b": 600}, nil)}
	o := NewDurationOracle(dir, nil, nil, time.Second)

	s, ok := o.GetDuration(context.Background(), resolvedLeg())

	require.True(t, ok)
	assert.Equal(t, 600, s)
	assert.Equal(t, []string{"place_id:a|place_id:b"}, pairs(dir.queries))
}

func TestDurationOracle_FallbackOrder(t *testing.T) {
	dir := &fakeDirections{directions: routeTable(nil, map[string]error{
		"place_id:a|place_id:b": errors.New("boom"),
	})}
	mx := &fakeMatrix{matrix: func(_ context.Context, q ports.RouteQuery) (int, bool, error) {
		return 777, true, nil
	}}
	o := NewDurationOracle(dir, mx, nil, time.Second)

	s, ok := o.GetDuration(context.Background(), resolvedLeg())

	require.True(t, ok)
	assert.Equal(t, 777, s)
	assert.Equal(t, []string{
		"place_id:a|place_id:b",
		"Station A|Office B",
		"place_id:a|Office B",
		"Station A|place_id:b",
	}, pairs(dir.queries))
	require.Len(t, mx.queries, 1)
	assert.Equal(t, domain.PlaceRef("a"), mx.queries[0].Origin)
	assert.Equal(t, domain.PlaceRef("b"), mx.queries[0].Destination)
}

func TestDurationOracle_RawTextRetryWins(t *testing.T) {
	dir := &fakeDirections{directions: routeTable(map[string]int{
		"Station A|Office B":  420,
		"place_id:a|Office B": 999,
	}, nil)}
	o := NewDurationOracle(dir, nil, nil, time.Second)

	s, ok := o.GetDuration(context.Background(), resolvedLeg())

	require.True(t, ok)
	assert.Equal(t, 420, s)
	assert.Len(t, dir.queries, 2)
}

func TestDurationOracle_MixedRetry(t *testing.T) {
	dir := &fakeDirections{directions: routeTable(map[string]int{"Station A|place_id:b": 480}, nil)}
	o := NewDurationOracle(dir, nil, nil, time.Second)

	s, ok := o.GetDuration(context.Background(), resolvedLeg())

	require.True(t, ok)
	assert.Equal(t, 480, s)
	assert.Len(t, dir.queries, 4)
}

func TestDurationOracle_SkipsRepeatedPairs(t *testing.T) {
	dir := &fakeDirections{directions: routeTable(nil, nil)}
	mx := &fakeMatrix{matrix: func(context.Context, ports.RouteQuery) (int, bool, error) { return 0, false, nil }}
	o := NewDurationOracle(dir, mx, nil, time.Second)

	_, ok := o.GetDuration(context.Background(), LegRequest{
		OriginText:      "raw origin",
		DestinationText: "raw destination",
		Origin:          "raw origin",
		Destination:     "raw destination",
	})

	assert.False(t, ok)
	assert.Equal(t, []string{"raw origin|raw destination"}, pairs(dir.queries))
	assert.Len(t, mx.queries, 1)
}

func TestDurationOracle_Unresolved(t *testing.T) {
	dir := &fakeDirections{directions: func(context.Context, ports.RouteQuery) ([]ports.Route, error) {
		return nil, errors.New("network down")
	}}
	mx := &fakeMatrix{matrix: func(context.Context, ports.RouteQuery) (int, bool, error) {
		return 0, false, errors.New("network down")
	}}
	o := NewDurationOracle(dir, mx, nil, time.Second)

	s, ok := o.GetDuration(context.Background(), resolvedLeg())

	assert.False(t, ok)
	assert.Equal(t, 0, s)
}

func TestDurationOracle_TimeoutMovesToNextAttempt(t *testing.T) {
	dir := &fakeDirections{directions: func(ctx context.Context, q ports.RouteQuery) ([]ports.Route, error) {
		if q.Origin == domain.PlaceRef("a") && q.Destination == domain.PlaceRef("b") {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return []ports.Route{{DurationSeconds: 100}}, nil
	}}
	o := NewDurationOracle(dir, nil, nil, 20*time.Millisecond)

	s, ok := o.GetDuration(context.Background(), resolvedLeg())

	require.True(t, ok)
	assert.Equal(t, 100, s)
}

func TestDurationOracle_ForwardsPreferences(t *testing.T) {
	dir := &fakeDirections{directions: routeTable(nil, nil)}
	mx := &fakeMatrix{matrix: func(context.Context, ports.RouteQuery) (int, bool, error) { return 0, false, nil }}
	o := NewDurationOracle(dir, mx, nil, time.Second)

	driving := resolvedLeg()
	driving.AvoidTolls = true
	o.GetDuration(context.Background(), driving)
	for _, q := range dir.queries {
		assert.True(t, q.AvoidTolls)
		assert.Equal(t, driving.DepartAt, q.DepartAt)
		assert.Empty(t, q.RoutingPreference)
	}
	assert.True(t, mx.queries[0].AvoidTolls)

	dir.queries = nil
	transit := resolvedLeg()
	transit.Mode = domain.ModeTransit
	transit.AvoidTolls = true
	o.GetDuration(context.Background(), transit)
	require.NotEmpty(t, dir.queries)
	for _, q := range dir.queries {
		assert.False(t, q.AvoidTolls)
		assert.Equal(t, "fewer_transfers", q.RoutingPreference)
	}
}

func TestDurationOracle_Cache(t *testing.T) {
	calls := 0
	dir := &fakeDirections{directions: func(context.Context, ports.RouteQuery) ([]ports.Route, error) {
		calls++
		return []ports.Route{{DurationSeconds: 321}}, nil
	}}
	cache := &memDurationCache{m: map[ports.DurationKey]int{}}
	o := NewDurationOracle(dir, nil, cache, time.Second)

	s1, ok1 := o.GetDuration(context.Background(), resolvedLeg())
	s2, ok2 := o.GetDuration(context.Background(), resolvedLeg())

	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, 321, s1)
	assert.Equal(t, 321, s2)
	assert.Equal(t, 1, calls)

	later := resolvedLeg()
	later.DepartAt = later.DepartAt.Add(time.Hour)
	o.GetDuration(context.Background(), later)
	assert.Equal(t, 2, calls)
}

func TestFirstSuccess_FirstWins(t *testing.T) {
	s, name, ok := firstSuccess(context.Background(), time.Second, []attempt{
		{name: "miss", run: func(context.Context) (int, bool, error) { return 0, false, nil }},
		{name: "hit", run: func(context.Context) (int, bool, error) { return 10, true, nil }},
		{name: "later", run: func(context.Context) (int, bool, error) { return 20, true, nil }},
	})

	require.True(t, ok)
	assert.Equal(t, 10, s)
	assert.Equal(t, "hit", name)
}
