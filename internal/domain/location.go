package domain

import "strings"

const placeIDPrefix = "place_id:"

// LocationRef is either a backend place reference ("place_id:<id>") or the
// original location text unchanged.
type LocationRef string

// PlaceRef wraps a backend place identifier.
func PlaceRef(id string) LocationRef { return LocationRef(placeIDPrefix + id) }

// IsPlace reports whether the reference carries a backend place identifier.
func (r LocationRef) IsPlace() bool {
	return strings.HasPrefix(string(r), placeIDPrefix) && len(r) > len(placeIDPrefix)
}

// PlaceID returns the bare identifier, or "" for raw text.
func (r LocationRef) PlaceID() string {
	if !r.IsPlace() {
		return ""
	}
	return strings.TrimPrefix(string(r), placeIDPrefix)
}

func (r LocationRef) String() string { return string(r) }
