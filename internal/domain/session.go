package domain

import "time"

// Session is one planning session. It exclusively owns its trip parameters,
// itinerary, saved origins and the transit candidates last listed per leg.
// Revision changes whenever listed candidates are invalidated.
type Session struct {
	ID         string
	Trip       TripParameters
	Itinerary  Itinerary
	Origins    *SavedOrigins
	Candidates map[int][]RouteCandidate
	Revision   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewSession starts a session with normalized trip parameters.
func NewSession(id string, trip TripParameters, origins []string, now time.Time) *Session {
	trip = trip.Normalized()
	if trip.BaseDepartAt.IsZero() {
		trip.BaseDepartAt = DefaultDeparture(now)
	}
	return &Session{
		ID:         id,
		Trip:       trip,
		Itinerary:  Itinerary{},
		Origins:    NewSavedOrigins(origins),
		Candidates: map[int][]RouteCandidate{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Snapshot returns a deep copy that can be read without holding the session lock.
func (s *Session) Snapshot() Session {
	out := *s
	out.Itinerary = s.Itinerary.Clone()
	out.Origins = NewSavedOrigins(s.Origins.List())
	out.Candidates = make(map[int][]RouteCandidate, len(s.Candidates))
	for k, v := range s.Candidates {
		out.Candidates[k] = append([]RouteCandidate(nil), v...)
	}
	return out
}

// InvalidateCandidates drops listed candidates; leg indices shift whenever the
// itinerary or the trip changes.
func (s *Session) InvalidateCandidates() {
	s.Candidates = map[int][]RouteCandidate{}
	s.Revision++
}
