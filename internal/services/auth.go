package services

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"time"

	"github.com/taskvault/taskvault/internal/logger"
	"github.com/taskvault/taskvault/internal/models"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
	GetByCredentials(ctx context.Context, username, passwordHash string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, username, passwordHash string) (*models.UserDB, error)
	SetActiveToken(ctx context.Context, userID int64, token string, lastLoginAt *time.Time) error
	ClearActiveToken(ctx context.Context, userID int64) error
}

// TokenIssuer defines an interface for issuing signed tokens.
type TokenIssuer interface {
	Generate(ctx context.Context, userID int64, username string) (string, time.Time, error)
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	ID        int64
	Username  string
	Token     string
	ExpiresAt time.Time
}

// AuthService handles registration, login and logout.
type AuthService struct {
	reader UserReader
	writer UserWriter
	tokens TokenIssuer
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, tokens TokenIssuer) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		tokens: tokens,
	}
}

// HashPassword produces the stored form of a password: an unsalted SHA-256
// digest of the UTF-8 bytes, base64-encoded. The digest is deterministic,
// which is what the login lookup by (username, digest) pair relies on.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Register creates a new user, issues a token and persists it on the record.
func (svc *AuthService) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	existing, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Infow("user already exists", "username", username)
		return nil, ErrUserAlreadyExists
	}

	user, err := svc.writer.Create(ctx, username, HashPassword(password))
	if err != nil {
		logger.Log.Errorw("failed to create user", "err", err)
		return nil, err
	}

	token, expiresAt, err := svc.tokens.Generate(ctx, user.ID, user.Username)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "err", err)
		return nil, err
	}

	if err := svc.writer.SetActiveToken(ctx, user.ID, token, nil); err != nil {
		logger.Log.Errorw("failed to persist token", "err", err)
		return nil, err
	}

	return &AuthResult{
		ID:        user.ID,
		Username:  user.Username,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Login authenticates a user, issues a fresh token and stores it together
// with the login timestamp. Unknown user and wrong password both yield
// ErrInvalidCredentials.
func (svc *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := svc.reader.GetByCredentials(ctx, username, HashPassword(password))
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Infow("invalid credentials", "username", username)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := svc.tokens.Generate(ctx, user.ID, user.Username)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "err", err)
		return nil, err
	}

	now := time.Now()
	if err := svc.writer.SetActiveToken(ctx, user.ID, token, &now); err != nil {
		logger.Log.Errorw("failed to persist token", "err", err)
		return nil, err
	}

	return &AuthResult{
		ID:        user.ID,
		Username:  user.Username,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout clears the stored token for the user. The previously issued token
// stays acceptable until it expires: validation is stateless and never
// consults the store. A user record that has already been removed is a no-op.
func (svc *AuthService) Logout(ctx context.Context, userID int64) error {
	if err := svc.writer.ClearActiveToken(ctx, userID); err != nil {
		logger.Log.Errorw("failed to clear token", "userID", userID, "err", err)
		return err
	}
	return nil
}
