package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"wanderplan/internal/models"
)

// handleDays routes /api/v1/days/{day}/grid, /total and /bookings[/{id}].
func (s *HTTPServer) handleDays(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/days/")
	parts := strings.Split(rest, "/")
	if len(parts) < 2 {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid day number")
		return
	}

	switch {
	case len(parts) == 2 && parts[1] == "grid":
		s.handleGrid(w, r, day)
	case len(parts) == 2 && parts[1] == "total":
		s.handleDayTotal(w, r, day)
	case parts[1] == "bookings":
		s.handleBookings(w, r, day, parts[2:])
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *HTTPServer) handleGrid(w http.ResponseWriter, r *http.Request, day int) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	g, err := s.plans.Grid(r.Context(), day)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *HTTPServer) handleDayTotal(w http.ResponseWriter, r *http.Request, day int) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	perPerson, err := s.plans.DayTotal(r.Context(), day)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	forParty, err := s.plans.DayTotalForParty(r.Context(), day)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{
		"perPerson": perPerson,
		"forParty":  forParty,
	})
}

func (s *HTTPServer) handleBookings(w http.ResponseWriter, r *http.Request, day int, tail []string) {
	if len(tail) == 0 {
		switch r.Method {
		case http.MethodGet:
			bookings, err := s.plans.Bookings(r.Context(), day)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
		case http.MethodPost:
			var booking models.Booking
			if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
				writeError(w, http.StatusBadRequest, "invalid JSON body")
				return
			}
			placed, err := s.plans.Place(r.Context(), day, booking)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, placed)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	if len(tail) != 1 || tail[0] == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		// The path segment is the booking id.
		var body struct {
			StartTime string `json:"startTime"`
			EndTime   string `json:"endTime"`
			Color     string `json:"color"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		edited, err := s.plans.Edit(r.Context(), day, tail[0], body.StartTime, body.EndTime, body.Color)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, edited)
	case http.MethodDelete:
		// Removal addresses the slot by collection index, matching how the
		// calendar tracks which card was dragged off.
		index, err := strconv.Atoi(tail[0])
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid booking index")
			return
		}
		removed, err := s.plans.Remove(r.Context(), day, index)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, removed)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
