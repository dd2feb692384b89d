// Package models defines server-side records shared by both storage
// backends.
package models

import "time"

// User is a registered account. PasswordHash holds a bcrypt hash and must
// never leave the server.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
