// Package auth resolves caller identity from bearer tokens and hashes
// member credentials. Write operations require a resolved identity; read
// operations treat a missing identity as an anonymous caller.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidToken is returned when token validation fails for any reason.
var ErrInvalidToken = errors.New("auth: invalid token")

// ErrEmptySubject is returned when a token is requested for an empty user ID.
var ErrEmptySubject = errors.New("auth: empty subject")

const bearerPrefix = "Bearer "

// Service issues and verifies HS256 access tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService constructs a token service from a shared secret and token TTL.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// GenerateToken creates a signed access token for the given member.
func (s *Service) GenerateToken(userID uuid.UUID) (string, error) {
	if userID == uuid.Nil {
		return "", ErrEmptySubject
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyToken validates a raw token string and returns the member ID it
// carries.
func (s *Service) VerifyToken(raw string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return uuid.Nil, ErrInvalidToken
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}

// ResolveIdentity extracts the caller identity from an Authorization header.
// It returns nil for anonymous callers: a missing header, a malformed
// header, and an invalid token all resolve the same way.
func (s *Service) ResolveIdentity(header string) *uuid.UUID {
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if raw == "" {
		return nil
	}
	id, err := s.VerifyToken(raw)
	if err != nil {
		return nil
	}
	return &id
}

// HashPassword derives a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
