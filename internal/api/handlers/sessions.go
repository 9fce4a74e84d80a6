package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"visit-schedule-service/internal/api/dto"
	"visit-schedule-service/internal/domain"
	"visit-schedule-service/internal/services"
)

// SessionHandler exposes the planning-session form operations.
type SessionHandler struct {
	Planner *services.Planner
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TripRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}

	trip, err := toTrip(req)
	if err != nil {
		writeServiceError(w, r, "create session", err)
		return
	}

	sess := h.Planner.CreateSession(r.Context(), trip)
	writeJSON(w, r, http.StatusCreated, toSessionResponse(sess))
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Planner.GetSession(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, "get session", err)
		return
	}
	writeJSON(w, r, http.StatusOK, toSessionResponse(sess))
}

func (h *SessionHandler) Discard(w http.ResponseWriter, r *http.Request) {
	if err := h.Planner.DiscardSession(chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, "discard session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	var req dto.TripRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	trip, err := toTrip(req)
	if err != nil {
		writeServiceError(w, r, "update trip", err)
		return
	}

	sess, err := h.Planner.UpdateTrip(chi.URLParam(r, "id"), trip)
	if err != nil {
		writeServiceError(w, r, "update trip", err)
		return
	}
	writeJSON(w, r, http.StatusOK, toSessionResponse(sess))
}

func (h *SessionHandler) AddDestination(w http.ResponseWriter, r *http.Request) {
	var req dto.DestinationRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	sess, err := h.Planner.AddDestination(chi.URLParam(r, "id"), services.DestinationInput{
		Name:        req.Name,
		Address:     req.Address,
		StayMinutes: req.StayMinutes,
		Note:        req.Note,
	})
	if err != nil {
		writeServiceError(w, r, "add destination", err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toSessionResponse(sess))
}

func (h *SessionHandler) ImportLegacy(w http.ResponseWriter, r *http.Request) {
	var req dto.ImportRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	sess, err := h.Planner.ImportLegacy(chi.URLParam(r, "id"), req.Records)
	if err != nil {
		writeServiceError(w, r, "import legacy", err)
		return
	}
	writeJSON(w, r, http.StatusOK, toSessionResponse(sess))
}

func (h *SessionHandler) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}

	sess, err := h.Planner.DeleteDestination(chi.URLParam(r, "id"), index)
	if err != nil {
		writeServiceError(w, r, "delete destination", err)
		return
	}
	writeJSON(w, r, http.StatusOK, toSessionResponse(sess))
}

func (h *SessionHandler) ListOrigins(w http.ResponseWriter, r *http.Request) {
	origins, err := h.Planner.SavedOrigins(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, "list origins", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.OriginsResponse{Origins: origins})
}

func (h *SessionHandler) RegisterOrigin(w http.ResponseWriter, r *http.Request) {
	var req dto.OriginRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	origins, err := h.Planner.RegisterOrigin(r.Context(), chi.URLParam(r, "id"), req.Origin)
	if err != nil {
		writeServiceError(w, r, "register origin", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.OriginsResponse{Origins: origins})
}

func toTrip(req dto.TripRequest) (domain.TripParameters, error) {
	mode, err := domain.ParseTravelMode(req.Mode)
	if err != nil {
		return domain.TripParameters{}, err
	}

	trip := domain.TripParameters{
		Origin:     req.Origin,
		Mode:       mode,
		AvoidTolls: req.AvoidTolls,
	}
	if req.DepartAt != nil {
		trip.BaseDepartAt = *req.DepartAt
	}
	return trip, nil
}

func toSessionResponse(sess domain.Session) dto.SessionResponse {
	res := dto.SessionResponse{
		ID: sess.ID,
		Trip: dto.TripResponse{
			Origin:     sess.Trip.Origin,
			Mode:       string(sess.Trip.Mode),
			AvoidTolls: sess.Trip.AvoidTolls,
			DepartAt:   sess.Trip.BaseDepartAt,
		},
		Destinations: make([]dto.DestinationResponse, 0, len(sess.Itinerary)),
		SavedOrigins: []string{},
		CreatedAt:    sess.CreatedAt,
		UpdatedAt:    sess.UpdatedAt,
	}
	if sess.Origins != nil {
		res.SavedOrigins = sess.Origins.List()
	}

	for i, d := range sess.Itinerary {
		res.Destinations = append(res.Destinations, dto.DestinationResponse{
			Index:                 i,
			SchemaVersion:         domain.DestinationSchemaVersion,
			Name:                  d.Name,
			Address:               d.Address,
			StayMinutes:           d.StayMinutes,
			Note:                  d.Note,
			PinnedDurationSeconds: d.PinnedDurationSeconds,
		})
	}

	return res
}
