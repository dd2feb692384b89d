package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/dbx"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the session only if its user exists; the insert and the
// existence check are a single statement so no transaction is needed.
func (r *PostgresRepository) Create(ctx context.Context, s *models.Session) error {
	query := `
		INSERT INTO sessions (token, user_id, login_time, login_address)
		SELECT $1, u.id, $3, $4 FROM users u WHERE u.id = $2
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		s.Token, s.UserID, s.LoginTime, nullString(s.LoginAddress)).Scan(&s.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Find(ctx context.Context, token string) (*models.Session, error) {
	query := `
		SELECT id, token, user_id, login_time, login_address
		FROM sessions
		WHERE token = $1
	`
	s := &models.Session{}
	var addr sql.NullString
	if err := r.db.QueryRowContext(ctx, query, token).
		Scan(&s.ID, &s.Token, &s.UserID, &s.LoginTime, &addr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	s.LoginAddress = addr.String
	return s, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, token string) (int64, error) {
	query := `
		DELETE FROM sessions
		WHERE token = $1
	`
	res, err := r.db.ExecContext(ctx, query, token)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
