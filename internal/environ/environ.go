// Package environ abstracts the process environment-variable table so that
// mode detection and lookups can run against fixtures.
package environ

import (
	"os"
	"sync"
)

// Store provides read access to environment variables.
type Store interface {
	Lookup(key string) (string, bool)
}

// OS reads from the real process environment.
type OS struct{}

// Lookup returns the process value for key.
func (OS) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Map keeps variables in-memory and guards access with a RWMutex.
type Map struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMap initialises a Map with a copy of vars.
func NewMap(vars map[string]string) *Map {
	return &Map{vars: clone(vars)}
}

// Lookup returns the stored value for key.
func (m *Map) Lookup(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.vars[key]
	return v, ok
}

// Set stores value under key.
func (m *Map) Set(key, value string) {
	m.mu.Lock()
	if m.vars == nil {
		m.vars = make(map[string]string)
	}
	m.vars[key] = value
	m.mu.Unlock()
}

// Unset removes key.
func (m *Map) Unset(key string) {
	m.mu.Lock()
	delete(m.vars, key)
	m.mu.Unlock()
}

func clone(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
