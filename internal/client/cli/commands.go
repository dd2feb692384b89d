package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// credentials takes the username from args or prompts for it, then reads
// the password without echo. The caller wipes the password.
func (a *App) credentials(args []string) (string, []byte, error) {
	var userName string
	if len(args) > 0 {
		userName = args[0]
	} else {
		var err error
		if userName, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
			return "", nil, err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

func (a *App) Register(ctx context.Context, args []string) error {
	if len(args) > 2 {
		return usage("register [username] [role]")
	}

	role := common.RoleUser
	if len(args) == 2 {
		role = args[1]
	}

	userName, password, err := a.credentials(args)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	msg, err := a.api.Register(ctx, userName, string(password), role)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

// Login saves the returned token so later commands can omit it.
func (a *App) Login(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return usage("login [username]")
	}

	userName, password, err := a.credentials(args)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.api.Login(ctx, userName, string(password))
	if err != nil {
		return err
	}
	if err := a.saveToken(token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	fmt.Fprintln(a.out, "Login successful")
	fmt.Fprintln(a.out, token)
	return nil
}

func (a *App) Verify(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return usage("verify [token]")
	}
	token, err := a.tokenArg(args)
	if err != nil {
		return err
	}

	claims, err := a.api.Verify(ctx, token)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Token is valid")
	if claims == nil {
		return nil
	}
	fmt.Fprintf(a.out, "  user id:    %s\n", claims.UserID)
	fmt.Fprintf(a.out, "  role:       %s\n", claims.Role)
	if claims.OriginAddress != "" {
		fmt.Fprintf(a.out, "  origin:     %s\n", claims.OriginAddress)
	}
	fmt.Fprintf(a.out, "  issued at:  %s\n", time.Unix(claims.IssuedAt, 0).UTC().Format(time.RFC3339))
	fmt.Fprintf(a.out, "  expires at: %s\n", time.Unix(claims.ExpiresAt, 0).UTC().Format(time.RFC3339))
	return nil
}

// Logout forgets the saved token once the server has ended the session, or
// when the server no longer knows it.
func (a *App) Logout(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return usage("logout [token]")
	}
	token, err := a.tokenArg(args)
	if err != nil {
		return err
	}

	msg, err := a.api.Logout(ctx, token)
	if err != nil && !errors.Is(err, client.ErrNotFound) {
		return err
	}
	if ferr := a.forgetToken(token); ferr != nil {
		return fmt.Errorf("remove token: %w", ferr)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) Admin(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return usage("admin [token]")
	}
	token, err := a.tokenArg(args)
	if err != nil {
		return err
	}

	msg, err := a.api.Admin(ctx, token)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

// Health reports the HTTP health check and, when an address is configured,
// the gRPC health status.
func (a *App) Health(ctx context.Context) error {
	if err := a.api.Health(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "http: ok")

	if a.config.GRPCHealthAddr == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	status, err := grpcHealth(ctx, a.config.GRPCHealthAddr, "")
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "grpc: %s\n", status)
	return nil
}

var grpcHealth = client.GRPCHealth
