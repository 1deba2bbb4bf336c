// Package auth turns bearer tokens into sessions. Tokens are HS256 JWTs
// whose subject is the user UUID.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kirinyoku/courtbook/internal/domain"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Role  string `json:"role,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	secret []byte
	now    func() time.Time
}

func New(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret), now: time.Now}
}

// NewToken signs a token for userID valid for ttl.
func (a *Authenticator) NewToken(userID uuid.UUID, role string, ttl time.Duration) (string, error) {
	return a.NewSessionToken(domain.Session{UserID: userID, Role: role}, ttl)
}

// NewSessionToken signs a token carrying every field of sess.
func (a *Authenticator) NewSessionToken(sess domain.Session, ttl time.Duration) (string, error) {
	const op = "auth.Authenticator.NewSessionToken"

	now := a.now()
	claims := Claims{
		Role:  sess.Role,
		Email: sess.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("%s:%w", op, err)
	}

	return s, nil
}

// Parse validates a token and returns the session it carries.
//
// Returns:
//   - error: auth.ErrInvalidToken for a bad signature, an expired token or
//     a subject that is not a UUID.
func (a *Authenticator) Parse(token string) (domain.Session, error) {
	const op = "auth.Authenticator.Parse"

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s:%w: %v", op, ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s:%w: bad subject", op, ErrInvalidToken)
	}

	return domain.Session{UserID: userID, Email: claims.Email, Role: claims.Role}, nil
}
