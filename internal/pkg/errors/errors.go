package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Parse errors
	ErrMalformedIngredient ErrorCode = "MALFORMED_INGREDIENT"
	ErrMalformedDirection  ErrorCode = "MALFORMED_DIRECTION"

	// Lookup errors
	ErrUnknownRecipe     ErrorCode = "UNKNOWN_RECIPE"
	ErrUnknownIngredient ErrorCode = "UNKNOWN_INGREDIENT"

	// Validation errors
	ErrInvalidQuantity ErrorCode = "INVALID_QUANTITY"
	ErrInvalidInput    ErrorCode = "INVALID_INPUT"

	// Resource errors
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Store errors
	ErrDatabaseError ErrorCode = "DATABASE_ERROR"

	// Internal errors
	ErrInternal ErrorCode = "INTERNAL_ERROR"
)

// APIError represents a structured error carried from the core to the presentation layer
type APIError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Details    any       `json:"details,omitempty"`
	HTTPStatus int       `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *APIError with the same code, so callers can
// match on kind through wrapped errors.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new APIError
func New(code ErrorCode, message string, httpStatus int) *APIError {
	return &APIError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// WithDetails adds details to an error
func (e *APIError) WithDetails(details any) *APIError {
	e.Details = details
	return e
}

// MalformedDetails is attached to parse errors
type MalformedDetails struct {
	Recipe string `json:"recipe"`
	Item   string `json:"item"`
}

func MalformedIngredient(recipe, item string) *APIError {
	return New(ErrMalformedIngredient,
		fmt.Sprintf("recipe %q has malformed ingredient %q", recipe, item),
		http.StatusUnprocessableEntity,
	).WithDetails(MalformedDetails{Recipe: recipe, Item: item})
}

func MalformedDirection(recipe, item string) *APIError {
	return New(ErrMalformedDirection,
		fmt.Sprintf("recipe %q has malformed direction %q", recipe, item),
		http.StatusUnprocessableEntity,
	).WithDetails(MalformedDetails{Recipe: recipe, Item: item})
}

func UnknownRecipe(name string) *APIError {
	return New(ErrUnknownRecipe, fmt.Sprintf("recipe %q not found", name), http.StatusNotFound)
}

func UnknownIngredient(name string) *APIError {
	return New(ErrUnknownIngredient, fmt.Sprintf("ingredient %q not found", name), http.StatusNotFound)
}

func InvalidQuantity(raw string) *APIError {
	return New(ErrInvalidQuantity,
		fmt.Sprintf("quantity %q must be a non-negative integer", raw),
		http.StatusBadRequest,
	)
}

func InvalidInput(message string) *APIError {
	return New(ErrInvalidInput, message, http.StatusBadRequest)
}

func AlreadyExists(resource string) *APIError {
	return New(ErrAlreadyExists, fmt.Sprintf("%s already exists", resource), http.StatusConflict)
}

func Internal(message string) *APIError {
	return New(ErrInternal, message, http.StatusInternalServerError)
}

func DatabaseError(err error) *APIError {
	return New(ErrDatabaseError, "record store operation failed", http.StatusInternalServerError).WithDetails(err.Error())
}

// HasCode reports whether any error in err's chain is an APIError with code
func HasCode(err error, code ErrorCode) bool {
	var apiErr *APIError
	if !stderrors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == code
}

// FromError converts any error into an APIError. Unstructured errors become
// internal errors.
func FromError(err error) *APIError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}
	return Internal(err.Error())
}
