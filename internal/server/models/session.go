package models

import "time"

// Session is the registry entry for an issued token. Its presence means the
// token has not been revoked.
type Session struct {
	ID           string
	Token        string
	UserID       string
	LoginTime    time.Time
	LoginAddress string
}
