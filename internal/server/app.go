// Package server wires the gophauth server together: it opens the store,
// builds the auth services, and runs the HTTP API and the gRPC health
// endpoint until a shutdown signal arrives.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/httpapi"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/services"

	gs "github.com/dmitrijs2005/gophauth/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  repomanager.RepositoryManager
	auth   *services.AuthService
}

// NewApp opens the configured backend, brings its schema up (or resets it
// when ForceSync is set) and builds the service graph. Everything that
// needs the secret or the bcrypt cost receives it here, once.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	if c.SecretKey == config.DevSecretKey {
		logger.Warn(ctx, "using the built-in development secret key; set JWT_SECRET")
	}

	store, err := repomanager.New(c.Backend, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := newApp(ctx, c, logger, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, store repomanager.RepositoryManager) (*App, error) {
	pctx, cancel := context.WithTimeout(ctx, c.StoreTimeout)
	defer cancel()
	if err := store.Ping(pctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	if c.ForceSync {
		logger.Warn(ctx, "force sync: dropping and recreating schema")
		if err := store.ResetSchema(ctx); err != nil {
			return nil, err
		}
	} else if err := store.RunMigrations(ctx); err != nil {
		return nil, err
	}
	logger.Info(ctx, "Database synchronized", "backend", c.Backend, "force_sync", c.ForceSync)

	hasher, err := auth.NewHasher(c.BcryptCost)
	if err != nil {
		return nil, err
	}
	secret := []byte(c.SecretKey)
	issuer, err := auth.NewIssuer(secret)
	if err != nil {
		return nil, err
	}
	verifier, err := auth.NewVerifier(secret, nil)
	if err != nil {
		return nil, err
	}

	svc := services.NewAuthService(
		services.NewCredentialStore(store.Users(), hasher, c.StoreTimeout, logger),
		services.NewSessionRegistry(store.Sessions(), c.StoreTimeout, logger),
		issuer,
		verifier,
		logger,
	)

	return &App{config: c, logger: logger, store: store, auth: svc}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run starts the servers and blocks until ctx is cancelled, a signal is
// received, or one of the servers fails. The store is closed on return.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	run := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				app.logger.Error(ctx, "server failed", "server", name, "error", err)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				mu.Unlock()
				cancelFunc()
			}
		}()
	}

	run("http", httpapi.NewServer(app.config.HTTPAddr, app.logger, app.auth, app.store).Run)
	if app.config.GRPCHealthAddr != "" {
		run("grpc", gs.NewHealthServer(app.config.GRPCHealthAddr, app.logger, app.store, 0, app.config.StoreTimeout).Run)
	}

	wg.Wait()

	if err := app.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	app.logger.Info(context.WithoutCancel(ctx), "App stopped")
	return errors.Join(errs...)
}
