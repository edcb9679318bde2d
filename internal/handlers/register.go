package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"encoding/json"

	"github.com/taskvault/taskvault/internal/logger"
	"github.com/taskvault/taskvault/internal/models"
	"github.com/taskvault/taskvault/internal/services"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, username, password string) (*services.AuthResult, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// default: john_doe
	Username string `json:"username"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// AuthResponse is the payload returned on successful registration or login
// swagger:model AuthResponse
type AuthResponse struct {
	// User identifier
	ID int64 `json:"id"`

	// Username
	Username string `json:"username"`

	// Signed bearer token
	Token string `json:"token"`

	// Token expiration time
	ExpiresAt time.Time `json:"expires_at"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account with a unique username, issues a bearer token and persists it on the record.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 200 {object} models.APIResponse "User registered, token issued"
// @Failure 400 {object} models.APIResponse "Validation failure or user already exists"
// @Router /auth/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse("invalid request body"))
			return
		}

		v := newValidator()
		v.checkUsername(req.Username)
		v.checkPassword(req.Password)
		if v.hasErrors() {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse("invalid input data", v.messages()...))
			return
		}

		result, err := svc.Register(r.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeJSON(w, http.StatusBadRequest, models.ErrorResponse("user already exists"))
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
		}, "user registered successfully"))
	}
}
