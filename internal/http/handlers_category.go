package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/MsVron/budget/internal/category"
	"github.com/MsVron/budget/internal/core"
)

type categoryRequest struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Color string `json:"color"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	t := core.TransactionType(r.URL.Query().Get("type"))
	if t != "" {
		if err := t.Validate(); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, s.categories.ByType(t))
		return
	}
	respondJSON(w, http.StatusOK, s.categories.All())
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	name := sanitizeInput(req.Name)
	t := core.TransactionType(req.Type)
	cat, err := s.categories.Add(r.Context(), name, t, sanitizeInput(req.Color))
	if err != nil {
		if isValidationError(err) {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Add category failed", "error", err, "name", name)
		respondError(w, http.StatusInternalServerError, "could not store category")
		return
	}
	respondJSON(w, http.StatusCreated, cat)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cat := core.Category{
		ID:    r.PathValue("id"),
		Name:  sanitizeInput(req.Name),
		Type:  core.TransactionType(req.Type),
		Color: sanitizeInput(req.Color),
	}
	if err := cat.Validate(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.categories.Update(r.Context(), cat); err != nil {
		if errors.Is(err, category.ErrNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Update category failed", "error", err, "id", cat.ID)
		respondError(w, http.StatusInternalServerError, "could not update category")
		return
	}

	updated, _ := s.categories.ByID(cat.ID)
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.categories.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, category.ErrNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, category.ErrDefaultCategory):
			respondError(w, http.StatusForbidden, err.Error())
		default:
			slog.ErrorContext(r.Context(), "Delete category failed", "error", err, "id", id)
			respondError(w, http.StatusInternalServerError, "could not delete category")
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAvailableDefaults(w http.ResponseWriter, r *http.Request) {
	t := core.TransactionType(r.URL.Query().Get("type"))
	if t == "" {
		t = core.TypeExpense
	}
	if err := t.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, s.categories.AvailableDefaults(t))
}

func (s *Server) handleColorPalette(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, category.ColorPalette())
}
