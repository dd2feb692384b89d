// Package cli implements gophauth-cli, the command-line client for the
// gophauth HTTP API.
//
// Commands
//
//	register [username] [role]   create an account (role defaults to "user")
//	login [username]             log in and keep the token in the token file
//	verify [token]               show the claims of a token
//	logout [token]               end the session and forget the saved token
//	admin [token]                call the admin-only endpoint
//	health                       probe /healthz and, if configured, gRPC health
//	help                         list commands
//
// Passwords are always prompted for and read without echo. Commands that
// take a token fall back to the saved one. With no command, App.Run starts
// an interactive shell that accepts the same commands.
package cli
