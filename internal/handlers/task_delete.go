package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/taskvault/taskvault/internal/logger"
	"github.com/taskvault/taskvault/internal/middlewares"
	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/services"
)

// TaskDeleter defines the interface that the service must implement.
type TaskDeleter interface {
	Delete(ctx context.Context, id, ownerID int64) error
}

// NewDeleteTaskHandler returns an HTTP handler deleting one of the caller's tasks.
// @Summary Delete task
// @Description Removes the caller's task. A task owned by someone else is reported as not found.
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} models.APIResponse "Task deleted"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Failure 404 {object} models.APIResponse "Task not found"
// @Router /tasks/{id} [delete]
// @Security BearerAuth
func NewDeleteTaskHandler(svc TaskDeleter) http.HandlerFunc {
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

		if err := svc.Delete(ctx, id, identity.UserID); err != nil {
			switch {
			case errors.Is(err, services.ErrTaskNotFound):
				writeJSON(w, http.StatusNotFound, models.ErrorResponse("task not found"))
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeJSON(w, http.StatusInternalServerError, models.ErrorResponse("internal server error"))
			}
			return
		}

		writeJSON(w, http.StatusOK, models.SuccessResponse(nil, "task deleted successfully"))
	}
}
