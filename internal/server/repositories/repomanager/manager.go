// Package repomanager selects and owns the storage backend: it opens the
// database handle, applies the schema and vends the user and session
// repositories bound to it.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
)

// Supported storage backends.
const (
	BackendSQL = "sql"
	BackendORM = "orm"
)

type RepositoryManager interface {
	Users() users.Repository
	Sessions() sessions.Repository

	// RunMigrations brings the schema up to date without touching data.
	RunMigrations(ctx context.Context) error
	// ResetSchema drops both tables and recreates them empty.
	ResetSchema(ctx context.Context) error

	Ping(ctx context.Context) error
	Close() error
}

// New opens the backend named by backend against dsn.
func New(backend, dsn string) (RepositoryManager, error) {
	switch backend {
	case BackendSQL:
		return NewPostgresRepositoryManager(dsn)
	case BackendORM:
		return NewGormRepositoryManager(dsn)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
