package service

import "github.com/groceryworks/catalog-service/internal/models"

// Result is the envelope every mutation returns. Success implies a non-nil
// payload and an empty message; failure carries a human-readable message and
// no payload. Business failures are values, not errors.
type Result[T any] struct {
	Success bool
	Message string
	Payload *T
}

// Succeeded wraps a mutation outcome around its payload.
func Succeeded[T any](payload *T) Result[T] {
	return Result[T]{Success: true, Payload: payload}
}

// Failed wraps a business-rule or converted-fault message.
func Failed[T any](message string) Result[T] {
	return Result[T]{Message: message}
}

// Envelope instantiations returned by the service interfaces.
type (
	CategoryResult = Result[models.Category]
	ProductResult  = Result[models.Product]
)
