package security

import (
	"errors"
	"time"

	"scamdb/internal/common"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenManager issues and verifies the HS256 bearer tokens used by the API.
// Tokens are stateless: there is no server-side session table and no
// revocation list. Logout is a client-side discard.
type TokenManager struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewTokenManager(secret []byte) *TokenManager {
	return &TokenManager{tokenAuth: jwtauth.New("HS256", secret, nil)}
}

// JWTAuth exposes the underlying auth object for jwtauth.Verifier middleware.
func (m *TokenManager) JWTAuth() *jwtauth.JWTAuth {
	return m.tokenAuth
}

// Issue creates a signed token for subject expiring ttl from now. The TTL is
// a required parameter; callers supply the configured value.
func (m *TokenManager) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}
	_, tokenString, err := m.tokenAuth.Encode(claims)
	return tokenString, err
}

// Verify checks the signature and expiry of tokenString and returns the
// subject claim.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(m.tokenAuth, tokenString)
	if err != nil {
		if errors.Is(err, jwtauth.ErrExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}
	subject := token.Subject()
	if subject == "" {
		return "", common.ErrMissingSubject
	}
	return subject, nil
}

// GetSubjectFromClaims extracts the subject from claims decoded by the
// jwtauth.Verifier middleware.
func GetSubjectFromClaims(claims map[string]interface{}) (string, error) {
	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", common.ErrMissingSubject
	}
	return subject, nil
}
