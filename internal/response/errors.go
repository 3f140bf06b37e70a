package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"equipment-tracker-backend/internal/store"
)

// Error codes exposed to API callers.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidID          = "INVALID_ID"
	CodeNotFound           = "NOT_FOUND"
	CodeDuplicateField     = "DUPLICATE_FIELD"
	CodeMalformedRequest   = "MALFORMED_REQUEST"
	CodeRequestTimeout     = "REQUEST_TIMEOUT"
	CodeDatabaseConnection = "DATABASE_CONNECTION_ERROR"
	CodeInternal           = "INTERNAL_SERVER_ERROR"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"
	CodePayloadTooLarge    = "PAYLOAD_TOO_LARGE"
)

const internalMessage = "Something went wrong!"

// FieldError describes one violated field rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is the single error type that reaches the HTTP boundary. Operational
// errors carry a caller-safe message; internal ones keep the cause in Err only.
type AppError struct {
	Status      int
	Code        string
	Message     string
	Details     []FieldError
	Err         error
	Operational bool
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// New creates an operational error.
func New(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message, Operational: true}
}

// Wrap creates an operational error that keeps its cause.
func Wrap(err error, status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message, Err: err, Operational: true}
}

func Validation(details []FieldError) *AppError {
	e := New(http.StatusBadRequest, CodeValidation, "Invalid request data")
	e.Details = details
	return e
}

func InvalidID() *AppError {
	return New(http.StatusBadRequest, CodeInvalidID, "Invalid equipment ID format")
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, CodeNotFound, message)
}

func MalformedRequest(err error) *AppError {
	return Wrap(err, http.StatusBadRequest, CodeMalformedRequest, "Invalid JSON format in request body")
}

func RequestTimeout(err error) *AppError {
	return Wrap(err, http.StatusRequestTimeout, CodeRequestTimeout, "Request timeout - operation took too long")
}

func DatabaseConnection(err error) *AppError {
	return Wrap(err, http.StatusServiceUnavailable, CodeDatabaseConnection, "Database connection failed")
}

func DuplicateField(err error) *AppError {
	return Wrap(err, http.StatusBadRequest, CodeDuplicateField, "Duplicate field value. Please use another value!")
}

func TooManyRequests() *AppError {
	return New(http.StatusTooManyRequests, CodeTooManyRequests, "Too many requests, please slow down")
}

func PayloadTooLarge(err error) *AppError {
	return Wrap(err, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "Request body too large")
}

// Internal hides err behind the generic internal error.
func Internal(err error) *AppError {
	return &AppError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternal,
		Message: internalMessage,
		Err:     err,
	}
}

// Normalize maps any error onto an AppError of the fixed taxonomy.
func Normalize(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.As(err, &maxBytesErr):
		return PayloadTooLarge(err)
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr), errors.Is(err, io.ErrUnexpectedEOF):
		return MalformedRequest(err)
	case errors.Is(err, context.DeadlineExceeded):
		return RequestTimeout(err)
	case errors.Is(err, store.ErrNotFound):
		return Wrap(err, http.StatusNotFound, CodeNotFound, "Equipment record not found")
	case errors.Is(err, store.ErrDuplicate):
		return DuplicateField(err)
	case errors.Is(err, store.ErrUnavailable):
		return DatabaseConnection(err)
	default:
		return Internal(err)
	}
}
