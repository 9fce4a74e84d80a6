package domain

import (
	"fmt"
	"strings"
	"time"
)

// TravelMode selects the backend routing profile for every leg of a trip.
type TravelMode string

const (
	ModeDriving TravelMode = "driving"
	ModeWalking TravelMode = "walking"
	ModeTransit TravelMode = "transit"
)

// DepartureStep is the granularity of departure times collected by the form.
const DepartureStep = 5 * time.Minute

// ParseTravelMode accepts the three supported modes, case-insensitively.
// An empty string selects driving.
func ParseTravelMode(s string) (TravelMode, error) {
	switch TravelMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeDriving:
		return ModeDriving, nil
	case ModeWalking:
		return ModeWalking, nil
	case ModeTransit:
		return ModeTransit, nil
	}
	return "", fmt.Errorf("%w: unsupported travel mode %q", ErrValidation, s)
}

// Trip-wide parameters applied to every leg of a recomputation.
// AvoidTolls is only meaningful for driving.
type TripParameters struct {
	Origin       string
	Mode         TravelMode
	AvoidTolls   bool
	BaseDepartAt time.Time
}

// Normalized returns a copy with the mode defaulted, toll avoidance cleared
// for non-driving modes and the departure quantized to DepartureStep.
func (p TripParameters) Normalized() TripParameters {
	out := p
	out.Origin = strings.TrimSpace(out.Origin)
	if out.Mode == "" {
		out.Mode = ModeDriving
	}
	if out.Mode != ModeDriving {
		out.AvoidTolls = false
	}
	if !out.BaseDepartAt.IsZero() {
		out.BaseDepartAt = RoundUpToStep(out.BaseDepartAt, DepartureStep)
	}
	return out
}

// RoundUpToStep rounds t up to the next multiple of step.
// Times already on a boundary (to the second) are returned unchanged.
func RoundUpToStep(t time.Time, step time.Duration) time.Time {
	truncated := t.Truncate(step)
	if truncated.Equal(t) {
		return t
	}
	return truncated.Add(step)
}

// DefaultDeparture is the current instant rounded up to the next 5-minute boundary.
func DefaultDeparture(now time.Time) time.Time {
	return RoundUpToStep(now.Truncate(time.Second), DepartureStep)
}
