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

// TaskGetter defines the interface that the service must implement.
type TaskGetter interface {
	Get(ctx context.Context, id, ownerID int64) (*models.TaskDB, error)
}

// NewGetTaskHandler returns an HTTP handler fetching one of the caller's tasks.
// @Summary Get task
// @Description Returns the task only when it is owned by the caller. A task owned by someone else is reported as not found.
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} models.APIResponse "Task"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Failure 404 {object} models.APIResponse "Task not found"
// @Router /tasks/{id} [get]
// @Security BearerAuth
func NewGetTaskHandler(svc TaskGetter) http.HandlerFunc {
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

		task, err := svc.Get(ctx, id, identity.UserID)
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

		writeJSON(w, http.StatusOK, models.SuccessResponse(task, "task retrieved successfully"))
	}
}
