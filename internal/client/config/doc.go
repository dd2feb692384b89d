// Package config loads runtime configuration for the gophauth CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c/-config or $GOPHAUTH_CONFIG.
//  3. Environment: GOPHAUTH_SERVER, GOPHAUTH_TIMEOUT, GOPHAUTH_TOKEN_FILE,
//     GOPHAUTH_GRPC_HEALTH.
//  4. Command-line flags, placed before the subcommand.
//
// Supported flags
//
//	-a string     base URL of the server, e.g. http://127.0.0.1:5000
//	-t duration   per-request timeout
//	-f string     file the last login token is kept in ("" disables)
//	-g string     gRPC health address probed by the health command
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:5000",
//	  "timeout": "10s",
//	  "token_file": "/home/me/.gophauth/token",
//	  "grpc_health_addr": "127.0.0.1:50051"
//	}
package config
