package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/reflora/server/internal/keys"
	"github.com/reflora/server/internal/model"
)

// errSkipUser marks a row whose PII cannot be reconstructed: the key is
// absent or a field fails to decrypt. Such rows are hidden from callers
// instead of being shown with garbage values.
var errSkipUser = errors.New("skip user")

// reconstruct rebuilds the plaintext view of one user row. All three fields
// decrypt or the whole row is skipped; no partial view is ever returned.
func (s *User) reconstruct(ctx context.Context, row model.User) (model.UserView, error) {
	privatePEM, err := s.keyStore.Get(ctx, row.ID)
	if errors.Is(err, model.ErrNotFound) {
		s.logger.Warn("User service: user has no private key, skipping", "user_id", row.ID)
		return model.UserView{}, errSkipUser
	}
	if err != nil {
		return model.UserView{}, fmt.Errorf("failed to get private key: %w", err)
	}

	plaintexts := make([]string, 3)
	for i, ciphertext := range []string{row.FirstName, row.LastName, row.Email} {
		plaintext, err := keys.Decrypt(privatePEM, ciphertext)
		if err != nil {
			s.logger.Warn("User service: failed to decrypt user field, skipping user",
				"user_id", row.ID,
				"error", err.Error())
			return model.UserView{}, errSkipUser
		}
		plaintexts[i] = plaintext
	}

	return model.UserView{
		ID:        row.ID,
		FirstName: plaintexts[0],
		LastName:  plaintexts[1],
		Email:     plaintexts[2],
		Role:      row.Role,
	}, nil
}

// GetUser returns the plaintext view of one user. A user whose key is
// missing or whose fields cannot be decrypted is reported as not found.
func (s *User) GetUser(ctx context.Context, id int64) (model.UserView, error) {
	row, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.UserView{}, model.ErrNotFound
		}
		return model.UserView{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	view, err := s.reconstruct(ctx, row)
	if errors.Is(err, errSkipUser) {
		return model.UserView{}, model.ErrNotFound
	}
	if err != nil {
		return model.UserView{}, err
	}

	return view, nil
}

// ListUsers returns the plaintext views of all decryptable users. A single
// corrupt or keyless record never fails the whole listing.
func (s *User) ListUsers(ctx context.Context) ([]model.UserView, error) {
	views := make([]model.UserView, 0)
	err := s.ForEachUser(ctx, func(view model.UserView, _ model.User) bool {
		views = append(views, view)
		return true
	})
	if err != nil {
		return nil, err
	}

	return views, nil
}

// ForEachUser calls fn for every user whose PII reconstructs, passing the
// plaintext view and the stored row. Iteration stops early when fn returns
// false. Because emails are encrypted at rest there is no plaintext email
// index, so lookups by email go through this linear scan.
func (s *User) ForEachUser(ctx context.Context, fn func(view model.UserView, row model.User) bool) error {
	rows, err := s.users.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	for _, row := range rows {
		view, err := s.reconstruct(ctx, row)
		if errors.Is(err, errSkipUser) {
			continue
		}
		if err != nil {
			return err
		}
		if !fn(view, row) {
			return nil
		}
	}

	return nil
}
