package domain

import (
	"fmt"
	"strings"
)

// DestinationSchemaVersion is the version of the canonical Destination field set.
const DestinationSchemaVersion = 1

// MaxStayMinutes mirrors the upper bound offered by the entry form.
const MaxStayMinutes = 600

// Represents one planned stop of an itinerary.
// When Address is empty, Name is used as the search text.
// PinnedDurationSeconds, when non-nil, replaces live duration lookup for the
// leg that ends at this stop.
type Destination struct {
	Name                  string
	Address               string
	StayMinutes           int
	Note                  string
	PinnedDurationSeconds *int
}

// SearchText is the location text used for resolution and routing.
func (d Destination) SearchText() string {
	if a := strings.TrimSpace(d.Address); a != "" {
		return a
	}
	return strings.TrimSpace(d.Name)
}

// Pinned reports whether the leg duration is overridden.
func (d Destination) Pinned() bool { return d.PinnedDurationSeconds != nil }

// NewDestination trims and validates form input.
func NewDestination(name, address string, stayMinutes int, note string) (Destination, error) {
	d := Destination{
		Name:        strings.TrimSpace(name),
		Address:     strings.TrimSpace(address),
		StayMinutes: stayMinutes,
		Note:        strings.TrimSpace(note),
	}
	if err := ValidateDestination(d); err != nil {
		return Destination{}, err
	}
	return d, nil
}

// ValidateDestination enforces the rules applied at the form boundary.
func ValidateDestination(d Destination) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if d.StayMinutes < 0 {
		return fmt.Errorf("%w: stay_minutes must not be negative", ErrValidation)
	}
	if d.StayMinutes > MaxStayMinutes {
		return fmt.Errorf("%w: stay_minutes must be at most %d", ErrValidation, MaxStayMinutes)
	}
	return nil
}

// Itinerary is the ordered list of stops. Order is visiting order and is
// never changed by the system.
type Itinerary []Destination

// Clone copies the itinerary, including pinned duration pointers.
func (it Itinerary) Clone() Itinerary {
	out := make(Itinerary, len(it))
	for i, d := range it {
		if d.PinnedDurationSeconds != nil {
			v := *d.PinnedDurationSeconds
			d.PinnedDurationSeconds = &v
		}
		out[i] = d
	}
	return out
}

// Remove deletes the stop at index, preserving the order of the others.
func (it Itinerary) Remove(index int) (Itinerary, error) {
	if index < 0 || index >= len(it) {
		return it, fmt.Errorf("%w: destination index %d out of range", ErrNotFound, index)
	}
	out := make(Itinerary, 0, len(it)-1)
	out = append(out, it[:index]...)
	return append(out, it[index+1:]...), nil
}
