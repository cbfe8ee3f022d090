package model

// TokenManager generates and validates access tokens.
type TokenManager interface {
	GenerateAccessToken(userID int64, role Role) (string, error)
	ParseAccessToken(token string) (int64, Role, error)
}
