package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string     HTTP bind address (e.g. ":5000")
//	-g string     gRPC health bind address, "" disables it
//	-b string     storage backend: sql or orm
//	-d string     database DSN
//	-s string     token HMAC secret
//	-k int        bcrypt cost
//	-t duration   store call timeout (e.g. "5s")
//	-f            drop and recreate the schema at startup
//	-l string     log level
//
// args is first filtered with flagx.FilterArgs so flags owned by other
// components (such as -c) do not cause parse errors.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-b", "-d", "-s", "-k", "-t", "-f", "-l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.GRPCHealthAddr, "g", config.GRPCHealthAddr, "gRPC health address and port")
	fs.StringVar(&config.Backend, "b", config.Backend, "storage backend (sql|orm)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.DurationVar(&config.StoreTimeout, "t", config.StoreTimeout, "store call timeout")
	fs.BoolVar(&config.ForceSync, "f", config.ForceSync, "force schema sync")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	return fs.Parse(args)
}
