package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"visit-schedule-service/internal/domain"
	"visit-schedule-service/internal/ports"
)

// DestinationInput is the form payload for a new stop.
type DestinationInput struct {
	Name        string
	Address     string
	StayMinutes int
	Note        string
}

// Planner runs the planning-session operations: it owns the session store and
// wires the resolver, timeline engine and candidate selector together.
type Planner struct {
	store      *SessionStore
	engine     *TimelineEngine
	candidates *CandidateSelector
	resolver   Resolver
	origins    ports.OriginRepository
	now        func() time.Time
}

// NewPlanner builds a planner. origins may be nil (saved origins then live
// only as long as the session).
func NewPlanner(
	store *SessionStore,
	engine *TimelineEngine,
	candidates *CandidateSelector,
	resolver Resolver,
	origins ports.OriginRepository,
) *Planner {
	return &Planner{
		store:      store,
		engine:     engine,
		candidates: candidates,
		resolver:   resolver,
		origins:    origins,
		now:        time.Now,
	}
}

// CreateSession starts a session seeded with the persisted saved origins.
func (p *Planner) CreateSession(ctx context.Context, trip domain.TripParameters) domain.Session {
	var saved []string
	if p.origins != nil {
		list, err := p.origins.ListOrigins(ctx, domain.MaxSavedOrigins)
		if err != nil {
			log.Printf("load saved origins failed: %v", err)
		} else {
			saved = list
		}
	}

	return p.store.Create(trip, saved, p.now())
}

func (p *Planner) GetSession(id string) (domain.Session, error) {
	sess, err := p.store.Get(id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

func (p *Planner) DiscardSession(id string) error {
	if err := p.store.Discard(id); err != nil {
		return fmt.Errorf("discard session: %w", err)
	}
	return nil
}

// UpdateTrip replaces the trip parameters. A zero departure keeps the current one.
func (p *Planner) UpdateTrip(id string, trip domain.TripParameters) (domain.Session, error) {
	var out domain.Session
	err := p.store.Update(id, func(sess *domain.Session) error {
		if trip.BaseDepartAt.IsZero() {
			trip.BaseDepartAt = sess.Trip.BaseDepartAt
		}
		sess.Trip = trip.Normalized()
		sess.InvalidateCandidates()
		sess.UpdatedAt = p.now()
		out = sess.Snapshot()
		return nil
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("update trip: %w", err)
	}
	return out, nil
}

// AddDestination validates the input and appends it to the itinerary.
func (p *Planner) AddDestination(id string, in DestinationInput) (domain.Session, error) {
	d, err := domain.NewDestination(in.Name, in.Address, in.StayMinutes, in.Note)
	if err != nil {
		return domain.Session{}, fmt.Errorf("add destination: %w", err)
	}
	return p.appendDestinations(id, "add destination", []domain.Destination{d})
}

// ImportLegacy migrates records of the older key/value format and appends
// them in order. Nothing is appended if any record is invalid.
func (p *Planner) ImportLegacy(id string, records []map[string]any) (domain.Session, error) {
	migrated := make([]domain.Destination, 0, len(records))
	for i, r := range records {
		d, err := domain.MigrateLegacyDestination(r)
		if err != nil {
			return domain.Session{}, fmt.Errorf("import legacy: record %d: %w", i+1, err)
		}
		migrated = append(migrated, d)
	}
	return p.appendDestinations(id, "import legacy", migrated)
}

func (p *Planner) appendDestinations(id, op string, ds []domain.Destination) (domain.Session, error) {
	var out domain.Session
	err := p.store.Update(id, func(sess *domain.Session) error {
		sess.Itinerary = append(sess.Itinerary, ds...)
		sess.InvalidateCandidates()
		sess.UpdatedAt = p.now()
		out = sess.Snapshot()
		return nil
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// DeleteDestination removes the stop at index.
func (p *Planner) DeleteDestination(id string, index int) (domain.Session, error) {
	var out domain.Session
	err := p.store.Update(id, func(sess *domain.Session) error {
		it, err := sess.Itinerary.Remove(index)
		if err != nil {
			return err
		}
		sess.Itinerary = it
		sess.InvalidateCandidates()
		sess.UpdatedAt = p.now()
		out = sess.Snapshot()
		return nil
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("delete destination: %w", err)
	}
	return out, nil
}

// RegisterOrigin records origin in the session's saved list and persists it.
func (p *Planner) RegisterOrigin(ctx context.Context, id, origin string) ([]string, error) {
	var (
		out []string
		now = p.now()
	)
	err := p.store.Update(id, func(sess *domain.Session) error {
		if !sess.Origins.Register(origin) {
			return fmt.Errorf("%w: origin is required", domain.ErrValidation)
		}
		sess.UpdatedAt = now
		out = sess.Origins.List()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("register origin: %w", err)
	}

	if p.origins != nil {
		if err := p.origins.SaveOrigin(ctx, out[0], now); err != nil {
			log.Printf("save origin failed: origin=%q err=%v", out[0], err)
		}
	}

	return out, nil
}

// SavedOrigins lists the session's saved origins, most recent first.
func (p *Planner) SavedOrigins(id string) ([]string, error) {
	sess, err := p.store.Get(id)
	if err != nil {
		return nil, fmt.Errorf("saved origins: %w", err)
	}
	return sess.Origins.List(), nil
}

// Timeline recomputes the session's schedule from a snapshot of its itinerary.
func (p *Planner) Timeline(ctx context.Context, id string) (domain.Timeline, error) {
	sess, err := p.store.Get(id)
	if err != nil {
		return domain.Timeline{}, fmt.Errorf("timeline: %w", err)
	}
	return p.engine.Recompute(ctx, sess.Trip, sess.Itinerary), nil
}

// ListCandidates lists transit alternatives for the leg ending at index.
// The leg departs when the preceding part of the itinerary completes.
// If the trip or itinerary changes while the backend is queried, the result
// is discarded and ErrNotFound is returned.
func (p *Planner) ListCandidates(ctx context.Context, id string, index, maxCount int) ([]domain.RouteCandidate, error) {
	sess, err := p.store.Get(id)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	if sess.Trip.Mode != domain.ModeTransit {
		return nil, fmt.Errorf("list candidates: %w: candidates require transit mode", domain.ErrValidation)
	}
	if index < 0 || index >= len(sess.Itinerary) {
		return nil, fmt.Errorf("list candidates: %w: destination index %d out of range", domain.ErrNotFound, index)
	}

	prefix := p.engine.Recompute(ctx, sess.Trip, sess.Itinerary[:index])
	departAt := sess.Trip.BaseDepartAt
	originText := sess.Trip.Origin
	if prefix.CompletedAt != nil {
		departAt = *prefix.CompletedAt
		originText = sess.Itinerary[index-1].SearchText()
	}

	origin := domain.LocationRef(originText)
	destination := domain.LocationRef(sess.Itinerary[index].SearchText())
	if p.resolver != nil {
		origin = p.resolver.Resolve(ctx, originText)
		destination = p.resolver.Resolve(ctx, sess.Itinerary[index].SearchText())
	}

	list := p.candidates.ListCandidates(ctx, origin, destination, departAt, maxCount)

	err = p.store.Update(id, func(s *domain.Session) error {
		if s.Revision != sess.Revision {
			return fmt.Errorf("%w: itinerary changed while listing candidates for destination %d", domain.ErrNotFound, index)
		}
		s.Candidates[index] = append([]domain.RouteCandidate(nil), list...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	return list, nil
}

// PinCandidate pins the duration of a previously listed candidate onto the stop.
func (p *Planner) PinCandidate(id string, index, candidate int) (domain.Session, error) {
	var out domain.Session
	err := p.store.Update(id, func(sess *domain.Session) error {
		if index < 0 || index >= len(sess.Itinerary) {
			return fmt.Errorf("%w: destination index %d out of range", domain.ErrNotFound, index)
		}
		list := sess.Candidates[index]
		if candidate < 0 || candidate >= len(list) {
			return fmt.Errorf("%w: candidate %d has not been listed for destination %d", domain.ErrNotFound, candidate, index)
		}
		seconds := list[candidate].DurationSeconds
		sess.Itinerary[index].PinnedDurationSeconds = &seconds
		sess.UpdatedAt = p.now()
		out = sess.Snapshot()
		return nil
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("pin candidate: %w", err)
	}
	return out, nil
}

// PinDuration pins an explicit duration onto the stop at index.
func (p *Planner) PinDuration(id string, index, seconds int) (domain.Session, error) {
	if seconds < 0 {
		return domain.Session{}, fmt.Errorf("pin duration: %w: duration must not be negative", domain.ErrValidation)
	}
	return p.setPin(id, index, &seconds, "pin duration")
}

// Unpin restores live duration lookup for the stop at index.
func (p *Planner) Unpin(id string, index int) (domain.Session, error) {
	return p.setPin(id, index, nil, "unpin")
}

func (p *Planner) setPin(id string, index int, seconds *int, op string) (domain.Session, error) {
	var out domain.Session
	err := p.store.Update(id, func(sess *domain.Session) error {
		if index < 0 || index >= len(sess.Itinerary) {
			return fmt.Errorf("%w: destination index %d out of range", domain.ErrNotFound, index)
		}
		sess.Itinerary[index].PinnedDurationSeconds = seconds
		sess.UpdatedAt = p.now()
		out = sess.Snapshot()
		return nil
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
