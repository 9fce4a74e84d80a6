package services

import (
	"context"
	"time"

	"visit-schedule-service/internal/domain"
)

// Resolver maps location text to a place reference, falling back to the text.
type Resolver interface {
	Resolve(ctx context.Context, text string) domain.LocationRef
}

// DurationLookup estimates one leg's duration; ok is false when unresolved.
type DurationLookup interface {
	GetDuration(ctx context.Context, leg LegRequest) (seconds int, ok bool)
}

// TimelineEngine derives the chained schedule of an itinerary.
type TimelineEngine struct {
	resolver Resolver
	oracle   DurationLookup
}

func NewTimelineEngine(resolver Resolver, oracle DurationLookup) *TimelineEngine {
	return &TimelineEngine{resolver: resolver, oracle: oracle}
}

// Recompute walks the itinerary once, left to right. Each leg departs when the
// previous stop is left (the trip's base departure for the first leg) and
// starts from the previous stop's location text (the trip origin for the
// first leg). A pinned duration is used as-is without consulting the oracle;
// an unresolved duration counts as zero and the entry is marked unavailable.
//
// Legs depend on each other, so lookups are sequential. Recompute never fails.
func (e *TimelineEngine) Recompute(
	ctx context.Context,
	trip domain.TripParameters,
	destinations domain.Itinerary,
) domain.Timeline {
	entries := make([]domain.ScheduleEntry, 0, len(destinations))
	if len(destinations) == 0 {
		return domain.Timeline{Entries: entries}
	}

	mode := trip.Mode
	if mode == "" {
		mode = domain.ModeDriving
	}

	cursorDepart := trip.BaseDepartAt
	cursorOriginText := trip.Origin

	// Each stop's text is resolved as a destination and again as the next
	// origin; remember the first answer within this pass.
	resolved := make(map[string]domain.LocationRef, len(destinations)+1)
	resolve := func(text string) domain.LocationRef {
		if ref, ok := resolved[text]; ok {
			return ref
		}
		ref := domain.LocationRef(text)
		if e.resolver != nil {
			ref = e.resolver.Resolve(ctx, text)
		}
		resolved[text] = ref
		return ref
	}

	for _, d := range destinations {
		destText := d.SearchText()

		resolvedOrigin := resolve(cursorOriginText)
		resolvedDest := resolve(destText)

		durationSeconds := 0
		unavailable := false
		switch {
		case d.PinnedDurationSeconds != nil:
			durationSeconds = *d.PinnedDurationSeconds
		case e.oracle != nil:
			s, ok := e.oracle.GetDuration(ctx, LegRequest{
				OriginText:      cursorOriginText,
				DestinationText: destText,
				Origin:          resolvedOrigin,
				Destination:     resolvedDest,
				Mode:            mode,
				DepartAt:        cursorDepart,
				AvoidTolls:      trip.AvoidTolls,
			})
			if ok {
				durationSeconds = s
			} else {
				unavailable = true
			}
		default:
			unavailable = true
		}

		arriveAt := cursorDepart.Add(time.Duration(durationSeconds) * time.Second)
		leaveAt := arriveAt.Add(time.Duration(d.StayMinutes) * time.Minute)

		durationText := domain.UnavailableText
		if !unavailable {
			durationText = domain.FormatDuration(durationSeconds)
		}

		entries = append(entries, domain.ScheduleEntry{
			Name:            d.Name,
			Note:            d.Note,
			OriginLabel:     cursorOriginText,
			DestinationText: destText,
			DepartAt:        cursorDepart,
			ArriveAt:        arriveAt,
			LeaveAt:         leaveAt,
			DurationSeconds: durationSeconds,
			Unavailable:     unavailable,
			Pinned:          d.Pinned(),
			DurationText:    durationText,
			MapLink:         domain.MapLink(resolvedOrigin, resolvedDest, mode, cursorDepart),
		})

		cursorDepart = leaveAt
		cursorOriginText = destText
	}

	completedAt := entries[len(entries)-1].LeaveAt
	return domain.Timeline{Entries: entries, CompletedAt: &completedAt}
}
