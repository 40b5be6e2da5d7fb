// Package logging builds the zap logger shared by the CLI and HTTP server.
package logging
