package model

import (
	"context"
	"time"
)

// Role is a fixed set of user roles.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleOperator Role = "OPERATOR"
)

// Valid reports whether the role belongs to the enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleOperator:
		return true
	}
	return false
}

// UserStore defines persistence operations for users.
type UserStore interface {
	NextID(ctx context.Context) (int64, error)
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	List(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id int64) (bool, error)
	EmailDigestExists(ctx context.Context, digest string) (bool, error)
}

// User represents a stored user row. FirstName, LastName and Email hold
// hex-encoded RSA-OAEP ciphertext, never plaintext. PasswordHash is a
// bcrypt hash produced outside this core. EmailDigest is a keyed,
// non-reversible digest of the lowercased plaintext email used only for
// the create-time uniqueness check.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	EmailDigest  string
	PasswordHash string
	Role         Role
	CompanyID    int64
	CreatedAt    time.Time
}

// UserView is the decrypted user representation exposed to API callers.
type UserView struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

// CreateUserParams carries plaintext PII and the pre-hashed password into
// the provisioning service. The core never sees a raw password.
type CreateUserParams struct {
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         Role
	CompanyID    int64
}
