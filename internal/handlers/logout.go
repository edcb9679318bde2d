package handlers

import (
	"context"
	"net/http"

	"github.com/taskvault/taskvault/internal/logger"
	"github.com/taskvault/taskvault/internal/middlewares"
	"github.com/taskvault/taskvault/internal/models"
)

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context, userID int64) error
}

// NewLogoutHandler returns an HTTP handler for user logout.
// @Summary User logout
// @Description Clears the stored token on the caller's user record. The presented token remains valid until it expires.
// @Tags auth
// @Produce json
// @Success 200 {object} models.APIResponse "Logged out"
// @Failure 401 {object} models.APIResponse "Unauthorized"
// @Router /auth/logout [post]
// @Security BearerAuth
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		identity := middlewares.GetIdentityFromContext(ctx)
		if identity == nil {
			writeJSON(w, http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		if err := svc.Logout(ctx, identity.UserID); err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse("internal server error"))
			return
		}

		writeJSON(w, http.StatusOK, models.SuccessResponse(nil, "logged out successfully"))
	}
}
