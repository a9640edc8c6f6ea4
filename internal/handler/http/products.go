package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// listProducts handles GET /api/products?categoryId=<int?>
func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	categoryID := 0
	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			writeBindingError(w, "Invalid category id.")
			return
		}
		categoryID = id
	}

	products, err := s.products.List(r.Context(), categoryID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		writeErrorDocument(w, http.StatusInternalServerError, saveProductTarget, "An unexpected error occurred.", "500")
		return
	}

	writeJSON(w, http.StatusOK, newProductViews(products))
}

// saveProduct handles POST /api/products
func (s *Server) saveProduct(w http.ResponseWriter, r *http.Request) {
	var req *saveProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeBindingError(w, err.Error())
		return
	}

	if failures := saveProductValidator.Validate(req); len(failures) > 0 {
		writeValidationError(w, saveProductTarget, failures)
		return
	}

	result := s.products.Save(r.Context(), req.toModel())
	if !result.Success {
		writeBusinessError(w, result.Message)
		return
	}

	writeJSON(w, http.StatusCreated, newProductView(result.Payload))
}

// updateProduct handles PUT /api/products/{id}
func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeBindingError(w, "Invalid product id.")
		return
	}

	var req *saveProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeBindingError(w, err.Error())
		return
	}

	if failures := saveProductValidator.Validate(req); len(failures) > 0 {
		writeValidationError(w, saveProductTarget, failures)
		return
	}

	result := s.products.Update(r.Context(), id, req.toModel())
	if !result.Success {
		writeBusinessError(w, result.Message)
		return
	}

	writeJSON(w, http.StatusOK, newProductView(result.Payload))
}

// deleteProduct handles DELETE /api/products/{id}
func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeBindingError(w, "Invalid product id.")
		return
	}

	result := s.products.Delete(r.Context(), id)
	if !result.Success {
		writeBusinessError(w, result.Message)
		return
	}

	writeJSON(w, http.StatusOK, newProductView(result.Payload))
}
