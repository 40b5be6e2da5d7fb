package dotenv

import "github.com/eugenenazirov/envresolve/internal/environ"

// Mode identifies the active runtime environment.
type Mode string

const (
	Development Mode = "development"
	Test        Mode = "test"
	Production  Mode = "production"
)

const (
	// DefaultMode applies when the mode variable is unset.
	DefaultMode = Development
	// DefaultModeVar is the environment variable holding the mode.
	// Use --mode-var NODE_ENV (or WithModeVar) for the Node.js convention.
	DefaultModeVar = "APP_ENV"
)

var priorityTable = map[Mode][]string{
	Test:        {".env.test.local", ".env.local", ".env.test", ".env"},
	Production:  {".env.production.local", ".env.local", ".env.production", ".env"},
	Development: {".env.development.local", ".env.local", ".env.development", ".env"},
}

// Modes returns the supported modes.
func Modes() []Mode {
	return []Mode{Development, Test, Production}
}

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	_, ok := priorityTable[m]
	return ok
}

// Candidates returns a copy of the filenames probed for mode, highest
// priority first. Unknown modes have no candidates.
func Candidates(mode Mode) []string {
	names := priorityTable[mode]
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// ModeFrom reads the mode from variable in env. An unset variable yields
// DefaultMode; a set value is returned as-is, even when empty or unknown.
func ModeFrom(env environ.Store, variable string) Mode {
	if variable == "" {
		variable = DefaultModeVar
	}
	value, ok := env.Lookup(variable)
	if !ok {
		return DefaultMode
	}
	return Mode(value)
}
