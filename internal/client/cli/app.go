package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// APIClient is the part of client.HTTPClient the commands use.
type APIClient interface {
	Register(ctx context.Context, username, password, role string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
	Verify(ctx context.Context, token string) (*client.Claims, error)
	Logout(ctx context.Context, token string) (string, error)
	Admin(ctx context.Context, token string) (string, error)
	Health(ctx context.Context) error
}

type App struct {
	config *config.Config
	api    APIClient
	reader *bufio.Reader
	out    io.Writer

	// token is the token obtained by login in this process.
	token string
}

func NewApp(c *config.Config, in io.Reader, out io.Writer) *App {
	return &App{
		config: c,
		api:    client.NewHTTPClient(c.ServerURL, c.Timeout),
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Run executes the command in args, or the interactive shell when args is
// empty, and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		a.shell(ctx)
		return ExitOK
	}
	return a.dispatch(ctx, args)
}

type usageError struct{ usage string }

func (e *usageError) Error() string { return "usage: " + e.usage }

func usage(u string) error { return &usageError{usage: u} }

func (a *App) dispatch(ctx context.Context, args []string) int {
	var err error

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "register":
		err = a.Register(ctx, rest)
	case "login":
		err = a.Login(ctx, rest)
	case "verify":
		err = a.Verify(ctx, rest)
	case "logout":
		err = a.Logout(ctx, rest)
	case "admin":
		err = a.Admin(ctx, rest)
	case "health":
		err = a.Health(ctx)
	case "help", "-h", "--help":
		a.help()
	default:
		fmt.Fprintf(a.out, "unknown command %q\n", cmd)
		a.help()
		return ExitUsage
	}

	if err == nil {
		return ExitOK
	}

	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(a.out, ue.Error())
		return ExitUsage
	}
	a.printError(err)
	return ExitError
}

func (a *App) help() {
	fmt.Fprintln(a.out, "Available commands: register, login, verify, logout, admin, health, help")
}

// printError shows the server's message for API errors and the error text
// otherwise.
func (a *App) printError(err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		fmt.Fprintf(a.out, "error: %s (HTTP %d)\n", apiErr.Message, apiErr.Status)
		return
	}
	fmt.Fprintf(a.out, "error: %v\n", err)
}
