// Small helper for the JSON error envelope shared by both endpoints.
package handlers

import (
	"encoding/json"
	"net/http"
)

// respondJSONError writes {"error": msg} with the given status code.
func respondJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
