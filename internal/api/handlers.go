package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"wanderplan/internal/models"
)

func (s *HTTPServer) handleTrip(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		details, err := s.trips.Details(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, details)
	case http.MethodPut:
		var details models.TripDetails
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&details); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := s.trips.SaveDetails(r.Context(), &details); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, details)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	summary, err := s.trips.Summary(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *HTTPServer) handleSelectedDay(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		day, err := s.plans.SelectedDay(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"day": day})
	case http.MethodPut:
		var body struct {
			Day int `json:"day"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if err := s.plans.SelectDay(r.Context(), body.Day); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"day": body.Day})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleActivities(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		activities, err := s.activities.List(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"activities": activities})
	case http.MethodPost:
		var body struct {
			Title       string  `json:"title"`
			Description string  `json:"description"`
			Cost        float64 `json:"cost"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		activity, err := s.activities.Create(r.Context(), body.Title, body.Description, body.Cost)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, activity)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleActivityByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/activities/")
	propagate := false
	if trimmed, ok := strings.CutSuffix(rest, "/propagate"); ok {
		rest = trimmed
		propagate = true
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || strings.Contains(rest, "/") {
		writeError(w, http.StatusBadRequest, "invalid activity id")
		return
	}

	if propagate {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		updated, err := s.activities.Propagate(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"updated": updated})
		return
	}

	switch r.Method {
	case http.MethodPut:
		var upd models.ActivityUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		activity, err := s.activities.Update(r.Context(), id, upd)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, activity)
	case http.MethodDelete:
		if err := s.activities.Delete(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
