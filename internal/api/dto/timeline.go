package dto

import "time"

type ScheduleEntryResponse struct {
	Name            string    `json:"name"`
	Note            string    `json:"note"`
	OriginLabel     string    `json:"origin_label"`
	Destination     string    `json:"destination"`
	DepartAt        time.Time `json:"depart_at"`
	ArriveAt        time.Time `json:"arrive_at"`
	LeaveAt         time.Time `json:"leave_at"`
	DurationSeconds int       `json:"duration_seconds"`
	DurationText    string    `json:"duration_text"`
	Unavailable     bool      `json:"unavailable"`
	Pinned          bool      `json:"pinned"`
	MapLink         string    `json:"map_link"`
}

type TimelineResponse struct {
	Entries     []ScheduleEntryResponse `json:"entries"`
	CompletedAt *time.Time              `json:"completed_at,omitempty"`
}

type CandidateResponse struct {
	Index           int    `json:"index"`
	Summary         string `json:"summary"`
	DurationSeconds int    `json:"duration_seconds"`
	DurationText    string `json:"duration_text"`
	DepartText      string `json:"depart_text"`
	ArriveText      string `json:"arrive_text"`
	Transfers       int    `json:"transfers"`
	TransferSummary string `json:"transfer_summary"`
}

type CandidatesResponse struct {
	Candidates []CandidateResponse `json:"candidates"`
}

// PinRequest pins either a listed candidate or an explicit duration.
// Exactly one field must be set.
type PinRequest struct {
	Candidate       *int `json:"candidate"`
	DurationSeconds *int `json:"duration_seconds"`
}
