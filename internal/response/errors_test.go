package response

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"equipment-tracker-backend/internal/store"
)

func TestNormalize(t *testing.T) {
	var syntaxErr error = &json.SyntaxError{Offset: 3}
	var maxBytesErr error = &http.MaxBytesError{Limit: 10}

	testCases := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
		expectedMsg    string
	}{
		{"AppError passes through", InvalidID(), http.StatusBadRequest, CodeInvalidID, "Invalid equipment ID format"},
		{"Wrapped AppError passes through", fmt.Errorf("handler: %w", NotFound("gone")), http.StatusNotFound, CodeNotFound, "gone"},
		{"Syntax error", syntaxErr, http.StatusBadRequest, CodeMalformedRequest, "Invalid JSON format in request body"},
		{"Truncated body", io.ErrUnexpectedEOF, http.StatusBadRequest, CodeMalformedRequest, "Invalid JSON format in request body"},
		{"Body too large", maxBytesErr, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "Request body too large"},
		{"Deadline", fmt.Errorf("list: %w", context.DeadlineExceeded), http.StatusRequestTimeout, CodeRequestTimeout, "Request timeout - operation took too long"},
		{"Store not found", fmt.Errorf("get: %w", store.ErrNotFound), http.StatusNotFound, CodeNotFound, "Equipment record not found"},
		{"Store duplicate", store.ErrDuplicate, http.StatusBadRequest, CodeDuplicateField, "Duplicate field value. Please use another value!"},
		{"Store unavailable", fmt.Errorf("ping: %w", store.ErrUnavailable), http.StatusServiceUnavailable, CodeDatabaseConnection, "Database connection failed"},
		{"Anything else", errors.New("nil pointer somewhere"), http.StatusInternalServerError, CodeInternal, "Something went wrong!"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.err)
			assert.Equal(t, tc.expectedStatus, got.Status)
			assert.Equal(t, tc.expectedCode, got.Code)
			assert.Equal(t, tc.expectedMsg, got.Message)
		})
	}

	assert.Nil(t, Normalize(nil))
}

func TestInternal_IsNotOperational(t *testing.T) {
	cause := errors.New("connection string leaked here")
	e := Internal(cause)

	assert.False(t, e.Operational)
	assert.ErrorIs(t, e, cause)
	assert.NotContains(t, e.Message, "leaked")
	assert.True(t, InvalidID().Operational)
}

func TestValidation(t *testing.T) {
	details := []FieldError{{Field: "name", Message: "Equipment name is required"}}
	e := Validation(details)

	assert.Equal(t, http.StatusBadRequest, e.Status)
	assert.Equal(t, CodeValidation, e.Code)
	assert.Equal(t, "Invalid request data", e.Message)
	assert.Equal(t, details, e.Details)
}
