// Package handler implements the HTTP request handlers of the public API.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/reflora/server/internal/logger"
	"github.com/reflora/server/internal/model"
)

// userService is the part of the user service the handler depends on.
type userService interface {
	CreateUser(ctx context.Context, params model.CreateUserParams) (model.UserView, error)
	GetUser(ctx context.Context, id int64) (model.UserView, error)
	ListUsers(ctx context.Context) ([]model.UserView, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
}

// authService performs the credential check and issues access tokens.
type authService interface {
	Login(ctx context.Context, email string, checkPassword func(hash string) bool) (model.UserView, string, error)
}

// User handles user provisioning, lookup and authentication requests.
type User struct {
	service userService
	auth    authService
	logger  *logger.Logger
}

// NewUser creates a User handler.
func NewUser(service userService, auth authService, l *logger.Logger) *User {
	return &User{
		service: service,
		auth:    auth,
		logger:  l,
	}
}

type createUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	CompanyID int64  `json:"company_id"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string         `json:"access_token"`
	User        model.UserView `json:"user"`
}

// Create provisions a new user. The raw password is hashed here so the
// service layer only ever sees the bcrypt hash.
func (h *User) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, model.NewValidationError("body", "malformed JSON"))
		return
	}

	if req.Password == "" {
		writeError(w, h.logger, model.NewValidationError("password", "must not be empty"))
		return
	}
	// bcrypt rejects inputs longer than 72 bytes.
	if len(req.Password) > 72 {
		writeError(w, h.logger, model.NewValidationError("password", "too long"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	view, err := h.service.CreateUser(r.Context(), model.CreateUserParams{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.Role(req.Role),
		CompanyID:    req.CompanyID,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

// Get returns the decrypted view of a single user.
func (h *User) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, h.logger, model.NewValidationError("id", "must be an integer"))
		return
	}

	view, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// List returns the decrypted views of all readable users.
func (h *User) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListUsers(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

// Delete removes a user and their private key.
func (h *User) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, h.logger, model.NewValidationError("id", "must be an integer"))
		return
	}

	deleted, err := h.service.DeleteUser(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if !deleted {
		writeError(w, h.logger, model.ErrNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Login checks credentials and returns an access token with the user view.
func (h *User) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, model.NewValidationError("body", "malformed JSON"))
		return
	}

	view, token, err := h.auth.Login(r.Context(), req.Email, func(hash string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) == nil
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token, User: view})
}
