package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var errNoToken = errors.New("no token given and none saved; run login first")

// savedToken returns the in-memory token, else the one in the token file.
func (a *App) savedToken() (string, error) {
	if a.token != "" {
		return a.token, nil
	}
	if a.config.TokenFile == "" {
		return "", errNoToken
	}

	b, err := os.ReadFile(a.config.TokenFile)
	if errors.Is(err, fs.ErrNotExist) {
		return "", errNoToken
	}
	if err != nil {
		return "", err
	}

	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", errNoToken
	}
	return token, nil
}

// tokenArg picks the explicit token argument when given.
func (a *App) tokenArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return a.savedToken()
}

func (a *App) saveToken(token string) error {
	a.token = token
	if a.config.TokenFile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(a.config.TokenFile), 0o700); err != nil {
		return err
	}
	return os.WriteFile(a.config.TokenFile, []byte(token+"\n"), 0o600)
}

// forgetToken drops token if it is the saved one.
func (a *App) forgetToken(token string) error {
	saved, err := a.savedToken()
	if err != nil || saved != token {
		return nil
	}

	a.token = ""
	if a.config.TokenFile == "" {
		return nil
	}
	if err := os.Remove(a.config.TokenFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
