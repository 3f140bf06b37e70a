package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the body shape of every API response.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Count   *int       `json:"count,omitempty"`
	Message string     `json:"message,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody is the error member of a failed Envelope.
type ErrorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details"`
	Debug   string       `json:"debug,omitempty"`
}

// OK writes a 200 success envelope.
func OK(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Message: message})
}

// Created writes a 201 success envelope.
func Created(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data, Message: message})
}

// List writes a 200 success envelope including the item count.
func List(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Count: &count})
}

// Body builds the error member for e. With debug set, the underlying cause
// is included as well.
func Body(e *AppError, debug bool) *ErrorBody {
	body := &ErrorBody{Code: e.Code, Message: e.Message, Details: e.Details}
	if debug && e.Err != nil {
		body.Debug = e.Err.Error()
	}
	return body
}

// Abort writes the error envelope for e and stops the handler chain.
func Abort(c *gin.Context, e *AppError, debug bool) {
	c.AbortWithStatusJSON(e.Status, Envelope{Success: false, Error: Body(e, debug)})
}
