package errors

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// WriteError writes an error as a JSON response. Non-APIError values are
// masked as internal server errors so library error text never leaks to
// clients.
func WriteError(w http.ResponseWriter, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		slog.Error("unclassified error at transport boundary", "error", err)
		apiErr = ErrInternalServer
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.StatusCode)
	if encodeErr := json.NewEncoder(w).Encode(apiErr); encodeErr != nil {
		slog.Error("failed to encode error response", "error", encodeErr)
	}
}
