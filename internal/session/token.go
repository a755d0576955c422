package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid             = errors.New("invalid token")
	ErrTokenUnexpectedSignature = errors.New("unexpected token signing method")
)

// TokenManager issues and parses the gateway's own bearer tokens. The token
// carries the session id; the session record in redis holds everything else.
type TokenManager struct {
	secret []byte
	expiry time.Duration
}

func NewTokenManager(secret string, expiry time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), expiry: expiry}
}

func (m *TokenManager) Issue(sess *Session) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"session_id":  sess.ID,
		"national_id": sess.Identity.NationalID,
		"role":        sess.Identity.Role,
		"iat":         now.Unix(),
		"exp":         now.Add(m.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse validates the token and returns the session id it carries.
func (m *TokenManager) Parse(tokenStr string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenUnexpectedSignature
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return "", ErrTokenInvalid
	}

	sid, ok := claims["session_id"].(string)
	if !ok || sid == "" {
		return "", ErrTokenInvalid
	}
	return sid, nil
}
