package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer signs session tokens with a process-wide HMAC secret.
type Issuer struct {
	secret []byte
}

func NewIssuer(secret []byte) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret is empty")
	}
	return &Issuer{secret: secret}, nil
}

// Issue returns a compact JWT valid from issuedAt for TokenTTL. Every token
// carries a random jti, so two logins in the same second still differ.
func (i *Issuer) Issue(userID, role string, issuedAt time.Time, originAddress string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
			ID:        uuid.NewString(),
		},
		UserID:        userID,
		Role:          role,
		OriginAddress: originAddress,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}
