// Package application provides application initialization and dependency wiring.
// It builds the file and environment stores, the env loader and lookup, and
// the HTTP server from a config.Config, keeping the main package focused on
// CLI parsing and orchestration.
package application
