package http

import (
	"encoding/json"
	"net/http"
)

// WriteJSONError writes the handlers' error envelope, {"error": message},
// with the given status code.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// writeJSON encodes v as the response body. Headers must not have been
// written yet.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
