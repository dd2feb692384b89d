package sessions

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

const (
	insertSessionQuery = `(?s)^INSERT\s+INTO\s+sessions\b.*SELECT\s+\$1,\s*u\.id,\s*\$3,\s*\$4\s+FROM\s+users\s+u\s+WHERE\s+u\.id\s*=\s*\$2\s+RETURNING\s+id\s*$`
	selectSessionQuery = `(?s)^SELECT\s+id,\s*token,\s*user_id,\s*login_time,\s*login_address\s+FROM\s+sessions\s+WHERE\s+token\s*=\s*\$1\s*$`
	deleteSessionQuery = `(?s)^DELETE\s+FROM\s+sessions\s+WHERE\s+token\s*=\s*\$1\s*$`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	at := time.Now().UTC()
	mock.ExpectQuery(insertSessionQuery).
		WithArgs("tok123", "u1", at, sql.NullString{String: "10.0.0.1", Valid: true}).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("s1"))

	s := &models.Session{Token: "tok123", UserID: "u1", LoginTime: at, LoginAddress: "10.0.0.1"}
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ID != "s1" {
		t.Fatalf("id not filled: %+v", s)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_EmptyAddressIsNull(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertSessionQuery).
		WithArgs("tok", "u1", sqlmock.AnyArg(), sql.NullString{}).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("s1"))

	if err := repo.Create(context.Background(), &models.Session{Token: "tok", UserID: "u1", LoginTime: time.Now()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreate_UnknownUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertSessionQuery).
		WithArgs("tok", "nobody", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := repo.Create(context.Background(), &models.Session{Token: "tok", UserID: "nobody", LoginTime: time.Now()})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertSessionQuery).
		WithArgs("tok", "u1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &models.Session{Token: "tok", UserID: "u1", LoginTime: time.Now()})
	if err == nil || !regexp.MustCompile(`error performing sql request: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestFind_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	at := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "token", "user_id", "login_time", "login_address"}).
		AddRow("s1", "tok123", "u1", at, nil)
	mock.ExpectQuery(selectSessionQuery).
		WithArgs("tok123").
		WillReturnRows(rows)

	got, err := repo.Find(context.Background(), "tok123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != "u1" || !got.LoginTime.Equal(at) || got.LoginAddress != "" {
		t.Fatalf("unexpected row: %+v", got)
	}
}

func TestFind_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectSessionQuery).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background(), "nope")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete_ReportsCount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteSessionQuery).
		WithArgs("tok123").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(deleteSessionQuery).
		WithArgs("tok123").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.Delete(context.Background(), "tok123")
	if err != nil || n != 1 {
		t.Fatalf("first delete: n=%d err=%v", n, err)
	}
	n, err = repo.Delete(context.Background(), "tok123")
	if err != nil || n != 0 {
		t.Fatalf("second delete: n=%d err=%v", n, err)
	}
}

func TestDelete_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteSessionQuery).
		WithArgs("tok123").
		WillReturnError(errors.New("boom"))

	_, err := repo.Delete(context.Background(), "tok123")
	if err == nil || !regexp.MustCompile(`db error: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
