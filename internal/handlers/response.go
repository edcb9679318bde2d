package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/taskvault/taskvault/internal/models"
)

// writeJSON writes the envelope with the given status code.
func writeJSON(w http.ResponseWriter, status int, resp models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
