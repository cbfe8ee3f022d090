package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/reflora/server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// companyParam maps the zero company id to NULL.
func companyParam(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

// NextID reserves a user id from the sequence before any row exists, so the
// private key can be stored first and rolled back cheaply if the row insert
// fails.
func (r *UserRepository) NextID(ctx context.Context) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `SELECT nextval('users_id_seq')`).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to reserve user id: %w", err)
	}

	return id, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, first_name, last_name, email, email_digest, password_hash, role, company_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id, first_name, last_name, email, email_digest, password_hash, role, company_id, created_at`

	var saved model.User
	var company sql.NullInt64
	err := r.db.QueryRow(ctx, query,
		user.ID, user.FirstName, user.LastName, user.Email, user.EmailDigest,
		user.PasswordHash, user.Role, companyParam(user.CompanyID),
	).Scan(
		&saved.ID, &saved.FirstName, &saved.LastName, &saved.Email, &saved.EmailDigest,
		&saved.PasswordHash, &saved.Role, &company, &saved.CreatedAt,
	)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	saved.CompanyID = company.Int64

	return saved, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	query := `SELECT id, first_name, last_name, email, email_digest, password_hash, role, company_id, created_at
			  FROM users WHERE id = $1`

	var user model.User
	var company sql.NullInt64
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.EmailDigest,
		&user.PasswordHash, &user.Role, &company, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	user.CompanyID = company.Int64

	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT id, first_name, last_name, email, email_digest, password_hash, role, company_id, created_at
			  FROM users ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var user model.User
		var company sql.NullInt64
		err := rows.Scan(
			&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.EmailDigest,
			&user.PasswordHash, &user.Role, &company, &user.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		user.CompanyID = company.Int64
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}

	return users, nil
}

// Delete removes the user row and reports whether a row existed.
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// EmailDigestExists reports whether a user with the given email digest
// already exists. Uniqueness is checked on the plaintext-derived digest,
// not on the ciphertext, which differs per keypair even for equal emails.
func (r *UserRepository) EmailDigestExists(ctx context.Context, digest string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email_digest = $1)`, digest).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email digest: %w", err)
	}

	return exists, nil
}
