package dotenv

import "go.uber.org/zap"

// Option configures a Resolver or Loader.
type Option func(*settings)

type settings struct {
	modeVar string
	logger  *zap.Logger
	merge   bool
}

// WithModeVar sets the environment variable the mode is read from.
func WithModeVar(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.modeVar = name
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMerge loads every existing candidate instead of only the best match.
// Files are applied from lowest to highest priority so more specific files
// override less specific ones.
func WithMerge(enabled bool) Option {
	return func(s *settings) {
		s.merge = enabled
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		modeVar: DefaultModeVar,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
