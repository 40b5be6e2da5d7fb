package dotenv

import (
	"context"

	"go.uber.org/zap"

	"github.com/eugenenazirov/envresolve/internal/environ"
	"github.com/eugenenazirov/envresolve/internal/filestore"
)

// Resolver picks the env file to load for the current mode.
type Resolver struct {
	files   filestore.Store
	env     environ.Store
	modeVar string
	logger  *zap.Logger
}

// NewResolver constructs a Resolver probing files and reading the mode from env.
func NewResolver(files filestore.Store, env environ.Store, opts ...Option) *Resolver {
	s := newSettings(opts)
	return &Resolver{
		files:   files,
		env:     env,
		modeVar: s.modeVar,
		logger:  s.logger,
	}
}

// Mode returns the mode currently set in the environment store.
func (r *Resolver) Mode() Mode {
	return ModeFrom(r.env, r.modeVar)
}

// Resolve returns the highest priority candidate that exists. Probing is
// sequential and stops at the first hit.
func (r *Resolver) Resolve(ctx context.Context) (string, bool) {
	found := r.probe(ctx, Candidates(r.Mode()), true)
	if len(found) == 0 {
		return "", false
	}
	return found[0], true
}

// ResolveAll returns every existing candidate, highest priority first.
func (r *Resolver) ResolveAll(ctx context.Context) []string {
	return r.probe(ctx, Candidates(r.Mode()), false)
}

// probe checks each candidate in order. A failed existence check counts as
// "does not exist" and probing continues with the next candidate.
func (r *Resolver) probe(ctx context.Context, candidates []string, firstOnly bool) []string {
	var found []string
	for _, name := range candidates {
		ok, err := r.files.Exists(ctx, name)
		if err != nil {
			r.logger.Warn("env file existence check failed",
				zap.String("file", name),
				zap.Error(err),
			)
			continue
		}
		if !ok {
			continue
		}
		found = append(found, name)
		if firstOnly {
			break
		}
	}
	return found
}
