// Package validation implements field-level request validation with a stable
// error-code taxonomy. Validators are ordered lists of predicate/error pairs;
// they perform no I/O and never panic on expected rule violations.
package validation

import "fmt"

// ErrorCode pairs a stable machine-checkable code with a human-readable
// message. Codes are fixed per rule family; messages may interpolate a
// comparison value.
type ErrorCode struct {
	Code    string
	Message string
}

// Fixed registry of taxonomy entries.
var (
	ValidationErrors = ErrorCode{"0", "Validation errors occurred."}

	FieldInvalid          = ErrorCode{"InvalidValue", "Invalid field value."}
	FieldEmpty            = ErrorCode{"1", "Field can't be empty."}
	FieldNull             = ErrorCode{"2", "Field can't be null."}
	FieldNullOrWhitespace = ErrorCode{"3", "Field can't be null or whitespace."}
	FieldNotUnique        = ErrorCode{"4", "Field has to be unique."}
	FieldDoesntExist      = ErrorCode{"5", "Field with specified ID doesn't exist."}
	FieldMustBeNull       = ErrorCode{"10", "Field must be null."}
	FieldHasDuplicates    = ErrorCode{"11", "Field must not have duplicate values."}
)

// FieldNotGreater builds the "greater than" violation for a comparison value.
func FieldNotGreater(value interface{}) ErrorCode {
	return ErrorCode{"6", fmt.Sprintf("Field value has to be greater than %v.", value)}
}

// FieldNotGreaterOrEqual builds the "greater than or equal" violation.
func FieldNotGreaterOrEqual(value interface{}) ErrorCode {
	return ErrorCode{"7", fmt.Sprintf("Field value has to be greater than or equal to %v.", value)}
}

// FieldNotLess builds the "less than" violation.
func FieldNotLess(value interface{}) ErrorCode {
	return ErrorCode{"8", fmt.Sprintf("Field value has to be less than %v.", value)}
}

// FieldNotLessOrEqual builds the "less than or equal" violation.
func FieldNotLessOrEqual(value interface{}) ErrorCode {
	return ErrorCode{"9", fmt.Sprintf("Field value has to be less than or equal to %v.", value)}
}

// FieldLengthBetween builds the string-length violation.
func FieldLengthBetween(min, max int) ErrorCode {
	return ErrorCode{FieldInvalid.Code, fmt.Sprintf("Field length has to be between %d and %d", min, max)}
}

// FieldValueBetween builds the numeric-range violation.
func FieldValueBetween(min, max interface{}) ErrorCode {
	return ErrorCode{FieldInvalid.Code, fmt.Sprintf("Field value has to be between %v and %v", min, max)}
}
