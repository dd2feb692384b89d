// Package users declares the user-account repository contract and its two
// implementations: direct SQL over database/sql and GORM.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// Repository persists user accounts.
type Repository interface {
	// Create inserts user and fills in the store-assigned ID and CreatedAt.
	// A username collision returns common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByLogin looks a user up by exact (case-sensitive) username.
	// Returns common.ErrorNotFound when absent.
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
}
