package httputil

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the error envelope used by every endpoint. The status code is
// mirrored inside the body because some deployed clients only inspect the
// payload, not the HTTP status line.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// JSON writes v with the given HTTP status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes an ErrorBody, setting the HTTP status to match.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{StatusCode: status, Message: message})
}
