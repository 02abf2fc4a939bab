package http

import (
	"log/slog"
	"net/http"

	"github.com/MsVron/budget/internal/core"
)

// budgetDataRequest carries the anchor month selection. The legacy amount
// fields are accepted as decimal strings and stored untouched.
type budgetDataRequest struct {
	Month    string `json:"month"`
	Year     int    `json:"year"`
	Savings  string `json:"savings,omitempty"`
	Paycheck string `json:"paycheck,omitempty"`
	Bonus    string `json:"bonus,omitempty"`
}

func (s *Server) handleGetBudgetData(w http.ResponseWriter, r *http.Request) {
	bd, ok := s.data.BudgetData()
	if !ok {
		respondError(w, http.StatusNotFound, "no budget data configured")
		return
	}
	respondJSON(w, http.StatusOK, bd)
}

func (s *Server) handlePutBudgetData(w http.ResponseWriter, r *http.Request) {
	var req budgetDataRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	bd := core.BudgetData{Month: sanitizeInput(req.Month), Year: req.Year}
	for _, f := range []struct {
		raw  string
		dest *core.Money
	}{
		{req.Savings, &bd.Savings},
		{req.Paycheck, &bd.Paycheck},
		{req.Bonus, &bd.Bonus},
	} {
		if f.raw == "" {
			continue
		}
		amount, err := parseAmount(f.raw)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, "invalid amount: "+f.raw)
			return
		}
		*f.dest = amount
	}

	if err := bd.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := s.data.SaveBudgetData(r.Context(), bd); err != nil {
		slog.ErrorContext(r.Context(), "Save budget data failed", "error", err)
		respondError(w, http.StatusInternalServerError, "could not save budget data")
		return
	}
	respondJSON(w, http.StatusOK, bd)
}

// transactionRequest is the write shape for transactions. Amounts arrive as
// decimal strings and are parsed to cents at this boundary.
type transactionRequest struct {
	Type          string `json:"type"`
	Category      string `json:"category"`
	CategoryColor string `json:"categoryColor,omitempty"`
	Amount        string `json:"amount"`
	Description   string `json:"description,omitempty"`
	Date          string `json:"date"`
}

func (s *Server) transactionFromRequest(req transactionRequest) (core.Transaction, string) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return core.Transaction{}, "invalid amount: " + req.Amount
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return core.Transaction{}, "invalid date, expected YYYY-MM-DD"
	}

	t := core.Transaction{
		Type:          core.TransactionType(req.Type),
		Category:      sanitizeInput(req.Category),
		CategoryColor: sanitizeInput(req.CategoryColor),
		Amount:        amount,
		Description:   sanitizeInput(req.Description),
		Date:          date,
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err.Error()
	}
	return t, ""
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	t := core.TransactionType(q.Get("type"))
	if t != "" {
		if err := t.Validate(); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	// current=true scopes the list to the anchor month.
	if q.Get("current") == "true" {
		bd, ok := s.data.BudgetData()
		if !ok {
			respondJSON(w, http.StatusOK, []core.Transaction{})
			return
		}
		respondJSON(w, http.StatusOK, s.data.MonthlyTransactions(bd.Month, bd.Year, t))
		return
	}

	if t != "" {
		respondJSON(w, http.StatusOK, s.data.TransactionsByType(t))
		return
	}
	respondJSON(w, http.StatusOK, s.data.Transactions())
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, problem := s.transactionFromRequest(req)
	if problem != "" {
		respondError(w, http.StatusUnprocessableEntity, problem)
		return
	}

	stored, err := s.data.AddTransaction(r.Context(), t)
	if err != nil {
		slog.ErrorContext(r.Context(), "Add transaction failed", "error", err)
		respondError(w, http.StatusInternalServerError, "could not store transaction")
		return
	}
	respondJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, problem := s.transactionFromRequest(req)
	if problem != "" {
		respondError(w, http.StatusUnprocessableEntity, problem)
		return
	}
	t.ID = r.PathValue("id")

	// Unknown ids are deliberately not an error: the stored list wins.
	if err := s.data.UpdateTransaction(r.Context(), t); err != nil {
		slog.ErrorContext(r.Context(), "Update transaction failed", "error", err, "id", t.ID)
		respondError(w, http.StatusInternalServerError, "could not update transaction")
		return
	}
	respondJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.data.DeleteTransaction(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Delete transaction failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "could not delete transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// expenseRequest is the write shape for legacy expenses.
type expenseRequest struct {
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
}

func (s *Server) expenseFromRequest(req expenseRequest) (core.LegacyExpense, string) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return core.LegacyExpense{}, "invalid amount: " + req.Amount
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return core.LegacyExpense{}, "invalid date, expected YYYY-MM-DD"
	}

	e := core.LegacyExpense{
		Category:    sanitizeInput(req.Category),
		Amount:      amount,
		Description: sanitizeInput(req.Description),
		Date:        date,
	}
	if err := e.Validate(); err != nil {
		return core.LegacyExpense{}, err.Error()
	}
	return e, ""
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("current") == "true" {
		bd, ok := s.data.BudgetData()
		if !ok {
			respondJSON(w, http.StatusOK, []core.LegacyExpense{})
			return
		}
		respondJSON(w, http.StatusOK, s.data.MonthlyExpenses(bd.Month, bd.Year))
		return
	}
	respondJSON(w, http.StatusOK, s.data.Expenses())
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	e, problem := s.expenseFromRequest(req)
	if problem != "" {
		respondError(w, http.StatusUnprocessableEntity, problem)
		return
	}

	stored, err := s.data.AddExpense(r.Context(), e)
	if err != nil {
		slog.ErrorContext(r.Context(), "Add expense failed", "error", err)
		respondError(w, http.StatusInternalServerError, "could not store expense")
		return
	}
	respondJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	e, problem := s.expenseFromRequest(req)
	if problem != "" {
		respondError(w, http.StatusUnprocessableEntity, problem)
		return
	}
	e.ID = r.PathValue("id")

	if err := s.data.UpdateExpense(r.Context(), e); err != nil {
		slog.ErrorContext(r.Context(), "Update expense failed", "error", err, "id", e.ID)
		respondError(w, http.StatusInternalServerError, "could not update expense")
		return
	}
	respondJSON(w, http.StatusOK, e)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.data.DeleteExpense(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Delete expense failed", "error", err, "id", id)
		respondError(w, http.StatusInternalServerError, "could not delete expense")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
