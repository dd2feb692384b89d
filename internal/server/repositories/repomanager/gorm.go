package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dmitrijs2005/gophauth/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/users"
)

// GormRepositoryManager vends the GORM repositories. The schema is derived
// from the record structs via AutoMigrate.
type GormRepositoryManager struct {
	db       *gorm.DB
	sqlDB    *sql.DB
	users    *users.GormRepository
	sessions *sessions.GormRepository
}

// NewGormRepositoryManager opens dsn with the PostgreSQL or SQLite dialector,
// see IsSQLiteDSN.
func NewGormRepositoryManager(dsn string) (*GormRepositoryManager, error) {
	isLite := IsSQLiteDSN(dsn)

	db, err := gorm.Open(dialector(dsn, isLite), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if isLite {
		// SQLite serialises writers; one connection also keeps a shared
		// in-memory database alive for the life of the pool.
		sqlDB.SetMaxOpenConns(1)
	}

	return &GormRepositoryManager{
		db:       db,
		sqlDB:    sqlDB,
		users:    users.NewGormRepository(db),
		sessions: sessions.NewGormRepository(db),
	}, nil
}

// IsSQLiteDSN reports whether dsn addresses a SQLite database: a file: URI,
// ":memory:", or a path ending in .db or .sqlite. Everything else is
// treated as a PostgreSQL DSN.
func IsSQLiteDSN(dsn string) bool {
	path := dsn
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return strings.HasPrefix(dsn, "file:") ||
		path == ":memory:" ||
		strings.HasSuffix(path, ".db") ||
		strings.HasSuffix(path, ".sqlite")
}

func dialector(dsn string, isSQLite bool) gorm.Dialector {
	if !isSQLite {
		return postgres.Open(dsn)
	}
	if !strings.Contains(dsn, "_foreign_keys") && !strings.Contains(dsn, "_fk=") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_foreign_keys=on"
	}
	return sqlite.Open(dsn)
}

func (m *GormRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *GormRepositoryManager) Sessions() sessions.Repository {
	return m.sessions
}

func (m *GormRepositoryManager) RunMigrations(ctx context.Context) error {
	if err := m.db.WithContext(ctx).AutoMigrate(&users.Record{}, &sessions.Record{}); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (m *GormRepositoryManager) ResetSchema(ctx context.Context) error {
	if err := m.db.WithContext(ctx).Migrator().DropTable(&sessions.Record{}, &users.Record{}); err != nil {
		return fmt.Errorf("reset schema: %w", err)
	}
	return m.RunMigrations(ctx)
}

func (m *GormRepositoryManager) Ping(ctx context.Context) error {
	return m.sqlDB.PingContext(ctx)
}

func (m *GormRepositoryManager) Close() error {
	return m.sqlDB.Close()
}
