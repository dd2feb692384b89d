// Package auth mints, verifies and hashes the credentials handled by the
// service: HS256 session tokens and bcrypt password hashes.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of a session token.
const TokenTTL = time.Hour

// Claims is the payload of a session token. Registered claims supply
// iat, exp and jti; the rest identify the user and where they logged in from.
type Claims struct {
	jwt.RegisteredClaims
	UserID        string `json:"id"`
	Role          string `json:"role"`
	OriginAddress string `json:"originAddress,omitempty"`
}
