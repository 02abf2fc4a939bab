package http

import "net/http"

// The summary endpoints recompute on every request. Nothing derived is
// cached or persisted, so they are always consistent with the stored lists.

func (s *Server) handleMonthlySummary(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.monthly.CalculateMonthlySummary())
}

func (s *Server) handleExpensesIncomeSummary(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.expInc.GetExpensesIncomeSummary())
}

func (s *Server) handleWeeklyExpenses(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.weekly.GetWeeklyExpensesData())
}
