package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/goldendrops/storefront/internal/domain"
)

// TokenTTL is the fixed lifetime of an identity token.
const TokenTTL = 7 * 24 * time.Hour

var (
	// ErrInvalidToken covers bad signatures, unexpected algorithms, malformed
	// tokens and tokens without a subject.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned once the token's expiry has been reached.
	ErrExpiredToken = errors.New("token expired")
)

// Claims describes the JWT payload.
type Claims struct {
	SubjectID string      `json:"id"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 identity tokens. It never touches
// storage.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// TokenOption customises a TokenService.
type TokenOption func(*TokenService)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewTokenService builds a service signing with secret.
func NewTokenService(secret string, opts ...TokenOption) *TokenService {
	s := &TokenService{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs a token for the subject that expires TokenTTL from now.
func (s *TokenService) Issue(subjectID string, role domain.Role) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(TokenTTL)
	claims := &Claims{
		SubjectID: subjectID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks the signature and expiry and returns the embedded claims.
func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	claims := &Claims{}
	parsed, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrExpiredToken, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.SubjectID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
