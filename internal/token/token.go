package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nurkanat-dev/lifelog/internal/domain"
)

const defaultTTL = 1 * time.Hour

// Service issues and verifies HS256 bearer tokens. Tokens are stateless:
// validity is purely a function of signature and expiry, so there is no
// revocation — logout just makes the client forget its copy.
type Service struct {
	key []byte
	ttl time.Duration
}

func NewService(key []byte) *Service {
	return &Service{key: key, ttl: defaultTTL}
}

// NewServiceWithTTL exists for tests that need short-lived tokens.
func NewServiceWithTTL(key []byte, ttl time.Duration) *Service {
	return &Service{key: key, ttl: ttl}
}

// Issue signs a token with {sub, iat, exp} for the given user.
func (s *Service) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature before trusting any claim, then expiry,
// and returns the subject user ID.
func (s *Service) Verify(raw string) (string, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.key, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", domain.ErrTokenSignature
		default:
			return "", domain.ErrTokenMalformed
		}
	}
	if !t.Valid {
		return "", domain.ErrTokenMalformed
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrTokenMalformed
	}

	// jwt.Parse validates exp when present; a token without exp never
	// expires, which this service does not issue and will not accept.
	if exp, err := claims.GetExpirationTime(); err != nil || exp == nil {
		return "", domain.ErrTokenMalformed
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", domain.ErrTokenMalformed
	}
	return sub, nil
}
