package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// TaskRequest represents the JSON body for creating or updating a task
// swagger:model TaskRequest
type TaskRequest struct {
	// Title
	// required: true
	// default: buy milk
	Title string `json:"title"`

	// Description
	// default: two bottles
	Description *string `json:"description"`

	// Completed flag
	// default: false
	Completed bool `json:"completed"`
}

// parseTaskID extracts the {id} route parameter. ok is false for anything
// that is not a positive integer; callers treat that the same as an absent
// task so malformed ids leak nothing.
func parseTaskID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
