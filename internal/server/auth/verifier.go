package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// Verifier checks signature and expiry of presented tokens. It is stateless
// and never consults the session registry.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// NewVerifier builds a verifier for secret. now may be nil, in which case
// the wall clock is used.
func NewVerifier(secret []byte, now func() time.Time) (*Verifier, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret is empty")
	}
	if now == nil {
		now = time.Now
	}
	return &Verifier{secret: secret, now: now}, nil
}

// Verify returns the claims of a well-formed, correctly signed, unexpired
// token that names a user and a role. Every failure is common.ErrInvalidToken.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, common.ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	if claims.UserID == "" || claims.Role == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
