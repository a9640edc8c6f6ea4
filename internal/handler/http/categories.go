package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// listCategories handles GET /api/categories
func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.categories.List(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list categories")
		writeErrorDocument(w, http.StatusInternalServerError, saveCategoryTarget, "An unexpected error occurred.", "500")
		return
	}

	writeJSON(w, http.StatusOK, newCategoryViews(categories))
}

// saveCategory handles POST /api/categories
func (s *Server) saveCategory(w http.ResponseWriter, r *http.Request) {
	var req *saveCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeBindingError(w, err.Error())
		return
	}

	if failures := saveCategoryValidator.Validate(req); len(failures) > 0 {
		writeValidationError(w, saveCategoryTarget, failures)
		return
	}

	result := s.categories.Save(r.Context(), req.toModel())
	if !result.Success {
		writeBusinessError(w, result.Message)
		return
	}

	writeJSON(w, http.StatusCreated, newCategoryView(result.Payload))
}

// updateCategory handles PUT /api/categories/{id}
func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeBindingError(w, "Invalid category id.")
		return
	}

	var req *saveCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeBindingError(w, err.Error())
		return
	}

	if failures := saveCategoryValidator.Validate(req); len(failures) > 0 {
		writeValidationError(w, saveCategoryTarget, failures)
		return
	}

	result := s.categories.Update(r.Context(), id, req.toModel())
	if !result.Success {
		writeBusinessError(w, result.Message)
		return
	}

	writeJSON(w, http.StatusOK, newCategoryView(result.Payload))
}

// deleteCategory handles DELETE /api/categories/{id}
func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeBindingError(w, "Invalid category id.")
		return
	}

	result := s.categories.Delete(r.Context(), id)
	if !result.Success {
		writeBusinessError(w, result.Message)
		return
	}

	writeJSON(w, http.StatusOK, newCategoryView(result.Payload))
}
