package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"visit-schedule-service/internal/api/dto"
	"visit-schedule-service/internal/domain"
	"visit-schedule-service/internal/services"
)

// maxCandidatesLimit bounds the ?max= query parameter.
const maxCandidatesLimit = 10

// TimelineHandler exposes the schedule recomputation and the per-leg transit
// candidate operations.
type TimelineHandler struct {
	Planner *services.Planner
}

// Timeline recomputes the whole schedule. Legs whose duration could not be
// looked up are reported with unavailable=true rather than failing the request.
func (h *TimelineHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	tl, err := h.Planner.Timeline(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, "timeline", err)
		return
	}

	res := dto.TimelineResponse{
		Entries:     make([]dto.ScheduleEntryResponse, 0, len(tl.Entries)),
		CompletedAt: tl.CompletedAt,
	}
	for _, e := range tl.Entries {
		res.Entries = append(res.Entries, dto.ScheduleEntryResponse{
			Name:            e.Name,
			Note:            e.Note,
			OriginLabel:     e.OriginLabel,
			Destination:     e.DestinationText,
			DepartAt:        e.DepartAt,
			ArriveAt:        e.ArriveAt,
			LeaveAt:         e.LeaveAt,
			DurationSeconds: e.DurationSeconds,
			DurationText:    e.DurationText,
			Unavailable:     e.Unavailable,
			Pinned:          e.Pinned,
			MapLink:         e.MapLink,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *TimelineHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}

	maxCount := services.DefaultMaxCandidates
	if raw := r.URL.Query().Get("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxCandidatesLimit {
			writeError(w, r, http.StatusBadRequest, "max must be between 1 and 10")
			return
		}
		maxCount = n
	}

	list, err := h.Planner.ListCandidates(r.Context(), chi.URLParam(r, "id"), index, maxCount)
	if err != nil {
		writeServiceError(w, r, "list candidates", err)
		return
	}

	res := dto.CandidatesResponse{Candidates: make([]dto.CandidateResponse, 0, len(list))}
	for i, c := range list {
		res.Candidates = append(res.Candidates, dto.CandidateResponse{
			Index:           i,
			Summary:         c.Summary,
			DurationSeconds: c.DurationSeconds,
			DurationText:    domain.FormatDuration(c.DurationSeconds),
			DepartText:      c.DepartText,
			ArriveText:      c.ArriveText,
			Transfers:       c.Transfers,
			TransferSummary: c.TransferSummary,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *TimelineHandler) Pin(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}

	var req dto.PinRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	if (req.Candidate == nil) == (req.DurationSeconds == nil) {
		writeError(w, r, http.StatusBadRequest, "exactly one of candidate or duration_seconds is required")
		return
	}

	id := chi.URLParam(r, "id")
	var (
		sess domain.Session
		err  error
	)
	if req.Candidate != nil {
		sess, err = h.Planner.PinCandidate(id, index, *req.Candidate)
	} else {
		sess, err = h.Planner.PinDuration(id, index, *req.DurationSeconds)
	}
	if err != nil {
		writeServiceError(w, r, "pin", err)
		return
	}
	writeJSON(w, r, http.StatusOK, toSessionResponse(sess))
}

func (h *TimelineHandler) Unpin(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}

	sess, err := h.Planner.Unpin(chi.URLParam(r, "id"), index)
	if err != nil {
		writeServiceError(w, r, "unpin", err)
		return
	}
	writeJSON(w, r, http.StatusOK, toSessionResponse(sess))
}
