package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"wanderplan/internal/models"
)

func (s *HTTPServer) handleFlights(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		flights, err := s.extras.Flights(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"flights": flights})
	case http.MethodPost:
		var flight models.Flight
		if err := json.NewDecoder(r.Body).Decode(&flight); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		added, err := s.extras.AddFlight(r.Context(), flight)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, added)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleFlightByID(w http.ResponseWriter, r *http.Request) {
	id, ok := trailingID(w, r, "/api/v1/flights/")
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodPut:
		var flight models.Flight
		if err := json.NewDecoder(r.Body).Decode(&flight); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		updated, err := s.extras.UpdateFlight(r.Context(), id, flight)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := s.extras.DeleteFlight(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleStays(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		stays, err := s.extras.Stays(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"stays": stays})
	case http.MethodPost:
		var stay models.Stay
		if err := json.NewDecoder(r.Body).Decode(&stay); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		added, err := s.extras.AddStay(r.Context(), stay)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, added)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleStayByID(w http.ResponseWriter, r *http.Request) {
	id, ok := trailingID(w, r, "/api/v1/stays/")
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodPut:
		var stay models.Stay
		if err := json.NewDecoder(r.Body).Decode(&stay); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		updated, err := s.extras.UpdateStay(r.Context(), id, stay)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := s.extras.DeleteStay(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		expenses, err := s.extras.Expenses(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"expenses": expenses})
	case http.MethodPost:
		var expense models.Expense
		if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		added, err := s.extras.AddExpense(r.Context(), expense)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, added)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleExpenseByID(w http.ResponseWriter, r *http.Request) {
	id, ok := trailingID(w, r, "/api/v1/expenses/")
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodPut:
		var expense models.Expense
		if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		updated, err := s.extras.UpdateExpense(r.Context(), id, expense)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := s.extras.DeleteExpense(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleTodos(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		todos, err := s.extras.Todos(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"todos": todos})
	case http.MethodPost:
		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		added, err := s.extras.AddTodo(r.Context(), body.Text)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, added)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleTodoByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/todos/")
	if id, ok := strings.CutSuffix(rest, "/toggle"); ok {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		toggled, err := s.extras.ToggleTodo(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toggled)
		return
	}

	id, ok := trailingID(w, r, "/api/v1/todos/")
	if !ok {
		return
	}
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := s.extras.DeleteTodo(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// trailingID extracts the single path segment after prefix, writing a 400
// response and returning false when the path carries extra segments.
func trailingID(w http.ResponseWriter, r *http.Request, prefix string) (string, bool) {
	id := strings.TrimPrefix(r.URL.Path, prefix)
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "id is required")
		return "", false
	}
	return id, true
}
