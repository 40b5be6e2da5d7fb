// Package api serves a read-only HTTP view of env file resolution, loading
// and variable lookups.
package api
