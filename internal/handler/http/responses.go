package http

import (
	"encoding/json"
	"net/http"

	"github.com/groceryworks/catalog-service/internal/validation"
)

// errorDetail is one field-level entry of a structured error document.
type errorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// errorDocument is the structured error shape. Details are present only for
// validation-class errors.
type errorDocument struct {
	Error struct {
		Target  string        `json:"target,omitempty"`
		Message string        `json:"message"`
		Code    string        `json:"code"`
		Details []errorDetail `json:"details,omitempty"`
	} `json:"error"`
}

// simpleError is the flat error shape used when no field-level codes are
// available: model-binding failures and business-rule failures.
type simpleError struct {
	Success  bool     `json:"success"`
	Messages []string `json:"messages"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeValidationError renders field-level failures as a 422 structured
// document under the generic validation taxonomy entry.
func writeValidationError(w http.ResponseWriter, target string, failures []validation.Failure) {
	doc := errorDocument{}
	doc.Error.Target = target
	doc.Error.Message = validation.ValidationErrors.Message
	doc.Error.Code = validation.ValidationErrors.Code
	for _, f := range failures {
		doc.Error.Details = append(doc.Error.Details, errorDetail{
			Field:   f.Field,
			Message: f.Message,
			Code:    f.Code,
		})
	}
	writeJSON(w, http.StatusUnprocessableEntity, doc)
}

// writeBusinessError renders a service-reported failure message in the
// simple shape with a 400.
func writeBusinessError(w http.ResponseWriter, messages ...string) {
	writeJSON(w, http.StatusBadRequest, simpleError{Messages: messages})
}

// writeBindingError renders a malformed-payload failure in the simple shape
// with a 400. No service is invoked for these.
func writeBindingError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, simpleError{Messages: []string{message}})
}

// writeErrorDocument renders a detail-less structured document, used for
// faults outside the validation taxonomy.
func writeErrorDocument(w http.ResponseWriter, status int, target, message, code string) {
	doc := errorDocument{}
	doc.Error.Target = target
	doc.Error.Message = message
	doc.Error.Code = code
	writeJSON(w, status, doc)
}
