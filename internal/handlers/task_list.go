package handlers

import (
	"context"
	"net/http"

	"github.com/taskvault/taskvault/internal/logger"
	"github.com/taskvault/taskvault/internal/middlewares"
	"github.com/taskvault/taskvault/internal/models"
)

// TaskLister defines the interface that the service must implement.
type TaskLister interface {
	List(ctx context.Context, ownerID int64) ([]models.TaskDB, error)
}

// NewListTasksHandler returns an HTTP handler listing the caller's tasks.
// @Summary List tasks
// @Description Returns all tasks owned by the caller, newest first.
// @Tags tasks
// @Produce json
// @Success 200 {object} models.APIResponse "Tasks"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Router /tasks [get]
// @Security BearerAuth
func NewListTasksHandler(svc TaskLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		identity := middlewares.GetIdentityFromContext(ctx)
		if identity == nil {
			writeJSON(w, http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		tasks, err := svc.List(ctx, identity.UserID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse("internal server error"))
			return
		}

		writeJSON(w, http.StatusOK, models.SuccessResponse(tasks, "tasks retrieved successfully"))
	}
}
