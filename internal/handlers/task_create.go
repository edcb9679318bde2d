package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/taskvault/taskvault/internal/logger"
	"github.com/taskvault/taskvault/internal/middlewares"
	"github.com/taskvault/taskvault/internal/models"
)

// TaskCreator defines the interface that the service must implement.
type TaskCreator interface {
	Create(ctx context.Context, ownerID int64, title string, description *string, completed bool) (*models.TaskDB, error)
}

// NewCreateTaskHandler returns an HTTP handler creating a task for the caller.
// @Summary Create task
// @Description Validates the payload and stores a new task owned by the caller. Nothing is written when validation fails.
// @Tags tasks
// @Accept json
// @Produce json
// @Param taskRequest body handlers.TaskRequest true "Task payload"
// @Success 200 {object} models.APIResponse "Created task"
// @Failure 400 {object} models.APIResponse "Validation failure"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Router /tasks [post]
// @Security BearerAuth
func NewCreateTaskHandler(svc TaskCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		identity := middlewares.GetIdentityFromContext(ctx)
		if identity == nil {
			writeJSON(w, http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
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

		task, err := svc.Create(ctx, identity.UserID, req.Title, req.Description, req.Completed)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse("internal server error"))
			return
		}

		writeJSON(w, http.StatusOK, models.SuccessResponse(task, "task created successfully"))
	}
}
