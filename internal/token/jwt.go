package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/reflora/server/internal/model"
)

// Claims represents JWT claims carrying the user identity and role.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64      `json:"user_id"`
	Role   model.Role `json:"role"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	accessTTL time.Duration
}

const defaultAccessTTL = time.Hour

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string) *JWT {
	return &JWT{secretKey: secretKey, accessTTL: defaultAccessTTL}
}

// GenerateAccessToken creates a signed access token for the user.
func (j *JWT) GenerateAccessToken(userID int64, role model.Role) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
		},
		UserID: userID,
		Role:   role,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// ParseAccessToken validates a token and extracts the user id and role.
func (j *JWT) ParseAccessToken(tokenString string) (int64, model.Role, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse access token: %w", err)
	}
	if !token.Valid {
		return 0, "", fmt.Errorf("access token is invalid")
	}

	return claims.UserID, claims.Role, nil
}
