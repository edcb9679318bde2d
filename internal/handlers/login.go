package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskvault/taskvault/internal/logger"
	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/services"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, username, password string) (*services.AuthResult, error)
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Username
	// required: true
	// default: john_doe
	Username string `json:"username"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate user, issue a fresh bearer token and record the login time. Wrong password and unknown username are reported identically.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login request"
// @Success 200 {object} models.APIResponse "Token issued"
// @Failure 400 {object} models.APIResponse "Validation failure"
// @Failure 401 {object} models.APIResponse "Invalid username or password"
// @Router /auth/login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}

		v := newValidator()
		v.checkCond(req.Username != "", "username is required")
		v.checkPassword(req.Password)
		if v.hasErrors() {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse("invalid input data", v.messages()...))
			return
		}

		result, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				writeJSON(w, http.StatusUnauthorized, models.ErrorResponse("invalid username or password"))
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeJSON(w, http.StatusInternalServerError, models.ErrorResponse("internal server error"))
			}
			return
		}

		writeJSON(w, http.StatusOK, models.SuccessResponse(AuthResponse{
			ID:        result.ID,
			Username:  result.Username,
			Token:     result.Token,
			ExpiresAt: result.ExpiresAt,
		}, "login successful"))
	}
}
