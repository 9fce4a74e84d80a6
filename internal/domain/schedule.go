package domain

import "time"

// Represents one computed stop of a timeline.
// A ScheduleEntry is derived on every recomputation and never persisted.
// DepartAt <= ArriveAt <= LeaveAt always holds, and an entry's DepartAt is the
// previous entry's LeaveAt (or the trip's base departure for the first one).
type ScheduleEntry struct {
	Name            string
	Note            string
	OriginLabel     string
	DestinationText string
	DepartAt        time.Time
	ArriveAt        time.Time
	LeaveAt         time.Time
	DurationSeconds int
	// Unavailable marks a leg whose duration could not be looked up and was
	// counted as zero.
	Unavailable  bool
	Pinned       bool
	DurationText string
	MapLink      string
}

// Timeline is the output of a recomputation.
type Timeline struct {
	Entries []ScheduleEntry
	// CompletedAt is the last entry's LeaveAt; nil for an empty itinerary.
	CompletedAt *time.Time
}
