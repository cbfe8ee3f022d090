package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/reflora/server/internal/logger"
	"github.com/reflora/server/internal/model"
)

// Auth authenticates users by email and issues access tokens. Since emails
// are encrypted at rest under per-user keys, authentication scans all
// users, decrypting each candidate's email. The linear scan is a deliberate
// consequence of the encryption scheme, not an oversight.
type Auth struct {
	users        *User
	tokenManager model.TokenManager
	logger       *logger.Logger
}

// NewAuth creates a new Auth service.
func NewAuth(users *User, tokenManager model.TokenManager, logger *logger.Logger) *Auth {
	return &Auth{
		users:        users,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// Login finds the user with the given email and verifies the password
// through checkPassword, which receives the stored bcrypt hash. The raw
// password never reaches this service. On success it returns the plaintext
// view and a signed access token. Unknown email yields ErrNotFound, a
// failed password check yields ErrInvalidCredentials.
func (a *Auth) Login(ctx context.Context, email string, checkPassword func(hash string) bool) (model.UserView, string, error) {
	a.logger.Debug("Auth service: starting login")

	var (
		matchedView model.UserView
		matchedRow  model.User
		found       bool
	)
	err := a.users.ForEachUser(ctx, func(view model.UserView, row model.User) bool {
		if strings.EqualFold(view.Email, email) {
			matchedView = view
			matchedRow = row
			found = true
			return false
		}
		return true
	})
	if err != nil {
		return model.UserView{}, "", fmt.Errorf("failed to scan users: %w", err)
	}

	if !found {
		a.logger.Info("Auth service: no user with requested email")
		return model.UserView{}, "", model.ErrNotFound
	}

	if !checkPassword(matchedRow.PasswordHash) {
		a.logger.Info("Auth service: wrong password", "user_id", matchedRow.ID)
		return model.UserView{}, "", model.ErrInvalidCredentials
	}

	accessToken, err := a.tokenManager.GenerateAccessToken(matchedRow.ID, matchedRow.Role)
	if err != nil {
		return model.UserView{}, "", fmt.Errorf("failed to issue access token: %w", err)
	}

	a.logger.Info("Auth service: login completed", "user_id", matchedRow.ID)

	return matchedView, accessToken, nil
}
