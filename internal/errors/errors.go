// Package errors defines the structured error responses returned by the
// HTTP API. Library packages wrap plain errors; this taxonomy exists only
// at the transport boundary.
package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError is a structured API error response.
type APIError struct {
	StatusCode int    `json:"status_code"`
	ErrorCode  string `json:"error_code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Render implements render.Renderer.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates an APIError.
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{StatusCode: statusCode, ErrorCode: errorCode, Message: message}
}

// NewWithDetails creates an APIError carrying extra detail.
func NewWithDetails(statusCode int, errorCode, message string, details any) *APIError {
	return &APIError{StatusCode: statusCode, ErrorCode: errorCode, Message: message, Details: details}
}

// Predefined errors for the evaluation API.
var (
	ErrInvalidRequest   = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrValidationFailed = New(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed")
	ErrUnknownApproach  = New(http.StatusBadRequest, "UNKNOWN_APPROACH", "Unknown preprocessing approach")
	ErrDatasetNotFound  = New(http.StatusNotFound, "DATASET_NOT_FOUND", "Dataset file not found")
	ErrEvaluationFailed = New(http.StatusInternalServerError, "EVALUATION_FAILED", "Evaluation run failed")
	ErrInternalServer   = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

// DatasetNotFoundError wraps a file lookup failure with its path.
func DatasetNotFoundError(path string, err error) *APIError {
	return NewWithDetails(http.StatusNotFound, "DATASET_NOT_FOUND",
		fmt.Sprintf("dataset %s not found", path), err.Error())
}

// EvaluationFailedError wraps a pipeline failure.
func EvaluationFailedError(err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, "EVALUATION_FAILED",
		"Evaluation run failed", err.Error())
}

// ValidationError wraps a request validation failure.
func ValidationError(detail string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED",
		"Request validation failed", detail)
}
