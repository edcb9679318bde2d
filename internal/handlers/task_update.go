package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskvault/taskvault/internal/logger"
	"github.com/taskvault/taskvault/internal/middlewares"
	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/services"
)

// TaskUpdater defines the interface that the service must implement.
type TaskUpdater interface {
	Update(ctx context.Context, id, ownerID int64, title string, description *string, completed bool) (*models.TaskDB, error)
}

// NewUpdateTaskHandler returns an HTTP handler updating one of the caller's tasks.
// @Summary Update task
// @Description Overwrites title, description and completed on the caller's task and stamps the update time.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param taskRequest body handlers.TaskRequest true "Task payload"
// @Success 200 {object} models.APIResponse "Updated task"
// @Failure 400 {object} models.APIResponse "Validation failure"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Failure 404 {object} models.APIResponse "Task not found"
// @Router /tasks/{id} [put]
// @Security BearerAuth
func NewUpdateTaskHandler(svc TaskUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		identity := middlewares.GetIdentityFromContext(ctx)
		if identity == nil {
			writeJSON(w, http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		id, ok := parseTaskID(r)
		if !ok {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse("task not found"))
			return
		}

		var req TaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}

		v := newValidator()
		v.checkTitle(req.Title)
		v.checkDescription(req.Description)
		if v.hasErrors() {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse("invalid input data", v.messages()...))
			return
		}

		task, err := svc.Update(ctx, id, identity.UserID, req.Title, req.Description, req.Completed)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTaskNotFound):
				writeJSON(w, http.StatusNotFound, models.ErrorResponse("task not found"))
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeJSON(w, http.StatusInternalServerError, models.ErrorResponse("internal server error"))
			}
			return
		}

		writeJSON(w, http.StatusOK, models.SuccessResponse(task, "task updated successfully"))
	}
}
