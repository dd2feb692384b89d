package services

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

// fakeUsersRepo is an in-memory users.Repository with injectable errors.
type fakeUsersRepo struct {
	mu     sync.Mutex
	byName map[string]*models.User
	nextID int

	createErr error
	getErr    error
	block     bool
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byName: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byName[u.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.nextID++
	cp := *u
	cp.ID = "u" + strconv.Itoa(f.nextID)
	cp.CreatedAt = time.Now()
	f.byName[u.UserName] = &cp
	return &cp, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byName[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

// fakeSessionsRepo is an in-memory sessions.Repository with injectable errors.
type fakeSessionsRepo struct {
	mu      sync.Mutex
	byToken map[string]*models.Session

	createErr error
	findErr   error
	deleteErr error
}

func newFakeSessionsRepo() *fakeSessionsRepo {
	return &fakeSessionsRepo{byToken: map[string]*models.Session{}}
}

func (f *fakeSessionsRepo) Create(ctx context.Context, s *models.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byToken[s.Token]; ok {
		return common.ErrorAlreadyExists
	}
	cp := *s
	f.byToken[s.Token] = &cp
	return nil
}

func (f *fakeSessionsRepo) Find(ctx context.Context, token string) (*models.Session, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byToken[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionsRepo) Delete(ctx context.Context, token string) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byToken[token]; !ok {
		return 0, nil
	}
	delete(f.byToken, token)
	return 1, nil
}

var testSecret = []byte("test-secret")

func newTestHasher(t *testing.T) *auth.Hasher {
	t.Helper()
	h, err := auth.NewHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewHasher: %v", err)
	}
	return h
}

type fakeEnv struct {
	users    *fakeUsersRepo
	sessions *fakeSessionsRepo
	svc      *AuthService
}

func newFakeEnv(t *testing.T) *fakeEnv {
	t.Helper()
	ur, sr := newFakeUsersRepo(), newFakeSessionsRepo()
	log := logging.Nop{}

	iss, _ := auth.NewIssuer(testSecret)
	ver, _ := auth.NewVerifier(testSecret, nil)

	svc := NewAuthService(
		NewCredentialStore(ur, newTestHasher(t), 50*time.Millisecond, log),
		NewSessionRegistry(sr, 50*time.Millisecond, log),
		iss, ver, log,
	)
	return &fakeEnv{users: ur, sessions: sr, svc: svc}
}
