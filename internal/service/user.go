package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/reflora/server/internal/keys"
	"github.com/reflora/server/internal/logger"
	"github.com/reflora/server/internal/model"
)

// User orchestrates user provisioning: keypair generation, PII encryption,
// row persistence and private-key persistence as one logical unit of work.
type User struct {
	users     model.UserStore
	companies model.CompanyStore
	keyStore  model.KeyStore
	digester  *EmailDigester
	logger    *logger.Logger
}

// NewUser creates a new User service.
func NewUser(
	users model.UserStore,
	companies model.CompanyStore,
	keyStore model.KeyStore,
	digester *EmailDigester,
	logger *logger.Logger,
) *User {
	return &User{
		users:     users,
		companies: companies,
		keyStore:  keyStore,
		digester:  digester,
		logger:    logger,
	}
}

func validateCreateParams(params model.CreateUserParams) error {
	fields := map[string]string{
		"first_name": params.FirstName,
		"last_name":  params.LastName,
		"email":      params.Email,
	}
	for field, value := range fields {
		if value == "" {
			return model.NewValidationError(field, "must not be empty")
		}
		// OAEP bound is a hard validation rule, never silent truncation.
		if len(value) > keys.MaxPlaintextLen {
			return model.NewValidationError(field, fmt.Sprintf("must not exceed %d bytes", keys.MaxPlaintextLen))
		}
	}
	if params.PasswordHash == "" {
		return model.NewValidationError("password_hash", "must not be empty")
	}
	if !params.Role.Valid() {
		return model.NewValidationError("role", fmt.Sprintf("unknown role %q", params.Role))
	}
	return nil
}

// CreateUser provisions a user. The email uniqueness check runs before any
// key material is generated. The private key is stored before the row is
// inserted: a key with no owning row is cheap to roll back, while a row
// with no key would be visible inconsistent state.
func (s *User) CreateUser(ctx context.Context, params model.CreateUserParams) (model.UserView, error) {
	s.logger.Debug("User service: starting user provisioning")

	if err := validateCreateParams(params); err != nil {
		return model.UserView{}, err
	}

	if params.CompanyID != 0 {
		if _, err := s.companies.GetByID(ctx, params.CompanyID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.UserView{}, model.NewValidationError("company_id", "company does not exist")
			}
			return model.UserView{}, fmt.Errorf("failed to check company: %w", err)
		}
	}

	digest := s.digester.Digest(params.Email)
	taken, err := s.users.EmailDigestExists(ctx, digest)
	if err != nil {
		return model.UserView{}, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if taken {
		s.logger.Info("User service: email already registered")
		return model.UserView{}, model.ErrEmailTaken
	}

	privatePEM, publicPEM, err := keys.GenerateKeyPair()
	if err != nil {
		return model.UserView{}, fmt.Errorf("failed to generate keypair: %w", err)
	}

	encryptedFirst, err := keys.Encrypt(publicPEM, params.FirstName)
	if err != nil {
		return model.UserView{}, fmt.Errorf("failed to encrypt first name: %w", err)
	}
	encryptedLast, err := keys.Encrypt(publicPEM, params.LastName)
	if err != nil {
		return model.UserView{}, fmt.Errorf("failed to encrypt last name: %w", err)
	}
	encryptedEmail, err := keys.Encrypt(publicPEM, params.Email)
	if err != nil {
		return model.UserView{}, fmt.Errorf("failed to encrypt email: %w", err)
	}

	id, err := s.users.NextID(ctx)
	if err != nil {
		return model.UserView{}, fmt.Errorf("failed to reserve user id: %w", err)
	}

	if err := s.keyStore.Put(ctx, id, privatePEM); err != nil {
		return model.UserView{}, fmt.Errorf("failed to store private key: %w", err)
	}

	user := model.User{
		ID:           id,
		FirstName:    encryptedFirst,
		LastName:     encryptedLast,
		Email:        encryptedEmail,
		EmailDigest:  digest,
		PasswordHash: params.PasswordHash,
		Role:         params.Role,
		CompanyID:    params.CompanyID,
	}

	saved, err := s.users.Create(ctx, user)
	if err != nil {
		// compensate: without the row the key must not survive
		if delErr := s.keyStore.Delete(ctx, id); delErr != nil {
			s.logger.Error("User service: failed to roll back private key",
				"user_id", id,
				"error", delErr.Error())
		}
		return model.UserView{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User service: user provisioned", "user_id", saved.ID)

	return model.UserView{
		ID:        saved.ID,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Email:     params.Email,
		Role:      saved.Role,
	}, nil
}

// DeleteUser removes the user row and its private key. Both deletions are
// attempted; the operation succeeds once the row is gone, and a failed key
// deletion is logged rather than surfaced, since an orphaned key decrypts
// nothing once the row is deleted.
func (s *User) DeleteUser(ctx context.Context, id int64) (bool, error) {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, model.ErrNotFound
		}
		return false, fmt.Errorf("failed to get user by id: %w", err)
	}

	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	if err := s.keyStore.Delete(ctx, id); err != nil {
		s.logger.Error("User service: failed to delete private key",
			"user_id", id,
			"error", err.Error())
	}

	s.logger.Info("User service: user deleted", "user_id", id)

	return deleted, nil
}
