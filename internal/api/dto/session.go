package dto

import "time"

// TripRequest sets the trip-wide parameters. A nil DepartAt keeps the
// current departure (or the default one for a new session).
type TripRequest struct {
	Origin     string     `json:"origin"`
	Mode       string     `json:"mode"`
	AvoidTolls bool       `json:"avoid_tolls"`
	DepartAt   *time.Time `json:"depart_at"`
}

type TripResponse struct {
	Origin     string    `json:"origin"`
	Mode       string    `json:"mode"`
	AvoidTolls bool      `json:"avoid_tolls"`
	DepartAt   time.Time `json:"depart_at"`
}

type DestinationRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	StayMinutes int    `json:"stay_minutes"`
	Note        string `json:"note"`
}

type DestinationResponse struct {
	Index                 int    `json:"index"`
	SchemaVersion         int    `json:"schema_version"`
	Name                  string `json:"name"`
	Address               string `json:"address"`
	StayMinutes           int    `json:"stay_minutes"`
	Note                  string `json:"note"`
	PinnedDurationSeconds *int   `json:"pinned_duration_seconds"`
}

// ImportRequest carries records of the older key/value destination format.
type ImportRequest struct {
	Records []map[string]any `json:"records"`
}

type SessionResponse struct {
	ID           string                `json:"id"`
	Trip         TripResponse          `json:"trip"`
	Destinations []DestinationResponse `json:"destinations"`
	SavedOrigins []string              `json:"saved_origins"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

type OriginRequest struct {
	Origin string `json:"origin"`
}

type OriginsResponse struct {
	Origins []string `json:"origins"`
}
