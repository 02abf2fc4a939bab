package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/MsVron/budget/internal/core"
)

type plannedBudgetRequest struct {
	Category string `json:"category"`
	Type     string `json:"type"`
	Amount   string `json:"amount"`
	Month    string `json:"month"`
	Year     int    `json:"year"`
}

func (s *Server) handleListPlannedBudgets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	t := core.TransactionType(q.Get("type"))
	if t != "" {
		if err := t.Validate(); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	month := q.Get("month")
	year := 0
	if v := q.Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid year")
			return
		}
		year = parsed
	}

	// current=true resolves the period from the anchor month.
	if q.Get("current") == "true" {
		bd, ok := s.data.BudgetData()
		if !ok {
			respondJSON(w, http.StatusOK, []core.PlannedBudget{})
			return
		}
		month, year = bd.Month, bd.Year
	}

	respondJSON(w, http.StatusOK, s.planned.GetPlannedBudgets(t, month, year))
}

func (s *Server) handleSetPlannedBudget(w http.ResponseWriter, r *http.Request) {
	var req plannedBudgetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "invalid amount: "+req.Amount)
		return
	}

	category := sanitizeInput(req.Category)
	t := core.TransactionType(req.Type)
	if err := s.planned.SetPlannedBudget(r.Context(), category, t, amount, req.Month, req.Year); err != nil {
		if isValidationError(err) {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Set planned budget failed", "error", err, "category", category)
		respondError(w, http.StatusInternalServerError, "could not store planned budget")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"category":           category,
		"type":               t,
		"plannedAmountCents": amount,
		"month":              req.Month,
		"year":               req.Year,
	})
}

func (s *Server) handleDeletePlannedBudget(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.planned.DeletePlannedBudget(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Delete planned budget failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "could not delete planned budget")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
