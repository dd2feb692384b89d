// Package sessions declares the session-registry repository contract. A row
// exists for every issued token that has not been revoked.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository defines operations for recording, looking up and revoking
// sessions keyed by their token string.
type Repository interface {
	// Create stores s and fills in its ID. Returns common.ErrorNotFound when
	// s.UserID does not reference an existing user.
	Create(ctx context.Context, s *models.Session) error

	// Find returns the session for token, or common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.Session, error)

	// Delete removes every session with the given token and reports how many
	// were removed. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) (int64, error)
}
