package services

import (
	"context"
	"log"
	"strings"
	"time"

	"visit-schedule-service/internal/domain"
	"visit-schedule-service/internal/ports"
)

// DefaultMaxCandidates is used when the caller does not bound the list.
const DefaultMaxCandidates = 3

// CandidateSelector lists alternative transit itineraries for one leg.
type CandidateSelector struct {
	directions ports.DirectionsProvider
	timeout    time.Duration
}

func NewCandidateSelector(directions ports.DirectionsProvider, timeout time.Duration) *CandidateSelector {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	return &CandidateSelector{directions: directions, timeout: timeout}
}

// ListCandidates returns up to maxCount transit alternatives in backend order.
// Backend failures and empty answers both produce an empty list.
func (s *CandidateSelector) ListCandidates(
	ctx context.Context,
	origin domain.LocationRef,
	destination domain.LocationRef,
	departAt time.Time,
	maxCount int,
) []domain.RouteCandidate {
	out := []domain.RouteCandidate{}
	if s.directions == nil || origin == "" || destination == "" {
		return out
	}
	if maxCount <= 0 {
		maxCount = DefaultMaxCandidates
	}

	q := ports.RouteQuery{
		Origin:            origin,
		Destination:       destination,
		Mode:              domain.ModeTransit,
		DepartAt:          departAt,
		RoutingPreference: domain.TransitRoutingPreference,
		Alternatives:      true,
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	routes, err := s.directions.Directions(ctx, q)
	if err != nil {
		log.Printf("list candidates failed: origin=%q destination=%q err=%v", origin, destination, err)
		return out
	}

	for _, r := range routes {
		if len(out) == maxCount {
			break
		}
		out = append(out, toCandidate(r))
	}

	return out
}

func toCandidate(r ports.Route) domain.RouteCandidate {
	transitSegments := 0
	lines := make([]string, 0, len(r.Steps))
	for _, step := range r.Steps {
		if !strings.EqualFold(step.TravelMode, "TRANSIT") {
			continue
		}
		transitSegments++
		if step.LineName != "" {
			lines = append(lines, step.LineName)
		}
	}

	transfers := transitSegments - 1
	if transfers < 0 {
		transfers = 0
	}

	summary := strings.TrimSpace(r.Summary)
	if summary == "" {
		summary = strings.Join(lines, " → ")
	}

	return domain.RouteCandidate{
		Summary:         summary,
		DurationSeconds: r.DurationSeconds,
		DepartText:      r.DepartText,
		ArriveText:      r.ArriveText,
		Transfers:       transfers,
		TransferSummary: domain.TransferSummary(transfers),
	}
}
