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

func transitRoute(summary string, seconds int, modes ...string) ports.Route {
	r := ports.Route{Summary: summary, DurationSeconds: seconds, DepartText: "9:05", ArriveText: "9:45"}
	for i, m := range modes {
		step := ports.RouteStep{TravelMode: m}
		if m == "TRANSIT" {
			step.LineName = []string{"Kuko", "Hakozaki", "Nanakuma"}[i%3]
		}
		r.Steps = append(r.Steps, step)
	}
	return r
}

func TestCandidateSelector_ListCandidates(t *testing.T) {
	dir := &fakeDirections{directions: func(context.Context, ports.RouteQuery) ([]ports.Route, error) {
		return []ports.Route{
			transitRoute("", 2400, "WALKING", "TRANSIT", "WALKING"),
			transitRoute("Express", 2100, "WALKING", "TRANSIT", "TRANSIT", "TRANSIT"),
			transitRoute("", 1800, "WALKING"),
			transitRoute("Extra", 3000, "TRANSIT"),
		}, nil
	}}
	s := NewCandidateSelector(dir, time.Second)
	depart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	got := s.ListCandidates(context.Background(), "A", domain.PlaceRef("b"), depart, 3)

	require.Len(t, got, 3)
	assert.Equal(t, "Hakozaki", got[0].Summary)
	assert.Equal(t, 0, got[0].Transfers)
	assert.Equal(t, "direct", got[0].TransferSummary)
	assert.Equal(t, 2400, got[0].DurationSeconds)
	assert.Equal(t, "9:05", got[0].DepartText)
	assert.Equal(t, "9:45", got[0].ArriveText)

	assert.Equal(t, "Express", got[1].Summary)
	assert.Equal(t, 2, got[1].Transfers)
	assert.Equal(t, "2 transfers", got[1].TransferSummary)

	assert.Equal(t, 0, got[2].Transfers)

	require.Len(t, dir.queries, 1)
	q := dir.queries[0]
	assert.True(t, q.Alternatives)
	assert.Equal(t, domain.ModeTransit, q.Mode)
	assert.Equal(t, "fewer_transfers", q.RoutingPreference)
	assert.Equal(t, depart, q.DepartAt)
}

func TestCandidateSelector_JoinsLineNames(t *testing.T) {
	dir := &fakeDirections{directions: func(context.Context, ports.RouteQuery) ([]ports.Route, error) {
		return []ports.Route{transitRoute("", 2000, "TRANSIT", "TRANSIT")}, nil
	}}
	s := NewCandidateSelector(dir, time.Second)

	got := s.ListCandidates(context.Background(), "A", "B", time.Now(), 0)

	require.Len(t, got, 1)
	assert.Equal(t, "Kuko → Hakozaki", got[0].Summary)
	assert.Equal(t, "1 transfer", got[0].TransferSummary)
}

func TestCandidateSelector_BackendFailureIsEmpty(t *testing.T) {
	dir := &fakeDirections{directions: func(context.Context, ports.RouteQuery) ([]ports.Route, error) {
		return nil, errors.New("unreachable")
	}}
	s := NewCandidateSelector(dir, time.Second)

	got := s.ListCandidates(context.Background(), "A", "B", time.Now(), 3)

	assert.NotNil(t, got)
	assert.Empty(t, got)

	none := NewCandidateSelector(nil, time.Second)
	assert.Empty(t, none.ListCandidates(context.Background(), "A", "B", time.Now(), 3))
}
