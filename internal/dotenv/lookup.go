package dotenv

import (
	"go.uber.org/zap"

	"github.com/eugenenazirov/envresolve/internal/environ"
)

// Lookup reads single variables from an environment store.
type Lookup struct {
	env    environ.Store
	logger *zap.Logger
}

// NewLookup constructs a Lookup over env.
func NewLookup(env environ.Store, logger *zap.Logger) *Lookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Lookup{env: env, logger: logger}
}

// Get returns the value stored for key, or the first default when key is
// missing. With neither it logs a warning and returns ("", false).
func (l *Lookup) Get(key string, def ...string) (string, bool) {
	if value, ok := l.env.Lookup(key); ok {
		return value, true
	}
	if len(def) > 0 {
		return def[0], true
	}
	l.logger.Warn("environment variable is not defined", zap.String("key", key))
	return "", false
}

// GetEnv looks key up in the process environment, logging through the
// global zap logger.
func GetEnv(key string, def ...string) (string, bool) {
	return NewLookup(environ.OS{}, zap.L()).Get(key, def...)
}
