package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the CLI.
type Config struct {
	ServerURL string
	Timeout   time.Duration
	TokenFile string
	// GRPCHealthAddr is optional; the health command skips the gRPC probe
	// when it is empty.
	GRPCHealthAddr string
}

// LoadDefaults populates c with sensible defaults. The token file lives in
// the user's home directory when one can be resolved.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.Timeout = 10 * time.Second
	c.TokenFile = ""
	if home, err := os.UserHomeDir(); err == nil {
		c.TokenFile = filepath.Join(home, ".gophauth", "token")
	}
}

// LoadConfig reads the process command line and environment. It returns
// the arguments left after the global flags (the subcommand and its args).
func LoadConfig() (*Config, []string, error) {
	return Load(os.Args[1:], env.ToMap(os.Environ()))
}

// Load applies defaults, JSON, environ and args in that order.
func Load(args []string, environ map[string]string) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, configFile(args, environ)); err != nil {
		return nil, nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg, environ); err != nil {
		return nil, nil, fmt.Errorf("env config: %w", err)
	}
	rest, err := parseFlags(cfg, args)
	if err != nil {
		return nil, nil, fmt.Errorf("flags: %w", err)
	}
	if cfg.ServerURL == "" {
		return nil, nil, errors.New("server url is empty")
	}
	return cfg, rest, nil
}

type envConfig struct {
	ServerURL      *string        `env:"GOPHAUTH_SERVER"`
	Timeout        *time.Duration `env:"GOPHAUTH_TIMEOUT"`
	TokenFile      *string        `env:"GOPHAUTH_TOKEN_FILE"`
	GRPCHealthAddr *string        `env:"GOPHAUTH_GRPC_HEALTH"`
}

func parseEnv(cfg *Config, environ map[string]string) error {
	var e envConfig
	if err := env.ParseWithOptions(&e, env.Options{Environment: environ}); err != nil {
		return err
	}
	if e.ServerURL != nil {
		cfg.ServerURL = *e.ServerURL
	}
	if e.Timeout != nil {
		cfg.Timeout = *e.Timeout
	}
	if e.TokenFile != nil {
		cfg.TokenFile = *e.TokenFile
	}
	if e.GRPCHealthAddr != nil {
		cfg.GRPCHealthAddr = *e.GRPCHealthAddr
	}
	return nil
}

// parseFlags parses the global flags that precede the subcommand and
// returns what follows them. -c/-config are accepted here too so the JSON
// path does not stop parsing.
func parseFlags(cfg *Config, args []string) ([]string, error) {
	fs := flag.NewFlagSet("gophauth-cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "server base URL")
	fs.DurationVar(&cfg.Timeout, "t", cfg.Timeout, "request timeout")
	fs.StringVar(&cfg.TokenFile, "f", cfg.TokenFile, "token file")
	fs.StringVar(&cfg.GRPCHealthAddr, "g", cfg.GRPCHealthAddr, "gRPC health address")
	fs.String("c", "", "path to JSON config file (short)")
	fs.String("config", "", "path to JSON config file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}
