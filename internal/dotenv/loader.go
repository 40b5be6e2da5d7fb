package dotenv

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/eugenenazirov/envresolve/internal/environ"
	"github.com/eugenenazirov/envresolve/internal/filestore"
)

// Loader resolves, reads and parses env files. Every call recomputes the
// result from scratch.
type Loader struct {
	resolver *Resolver
	files    filestore.Store
	logger   *zap.Logger
	merge    bool
}

// NewLoader constructs a Loader over the given stores.
func NewLoader(files filestore.Store, env environ.Store, opts ...Option) *Loader {
	s := newSettings(opts)
	return &Loader{
		resolver: NewResolver(files, env, opts...),
		files:    files,
		logger:   s.logger,
		merge:    s.merge,
	}
}

// Resolver returns the resolver used by the loader.
func (l *Loader) Resolver() *Resolver {
	return l.resolver
}

// Load returns the parsed variables of the resolved file. When nothing
// usable is found, or reading fails, it returns an empty map.
func (l *Loader) Load(ctx context.Context) map[string]string {
	return l.Inspect(ctx).Vars
}

// LoadFile reads and parses name directly, bypassing resolution.
func (l *Loader) LoadFile(ctx context.Context, name string) map[string]string {
	return l.InspectFile(ctx, name).Vars
}

// Inspect performs a load and returns the full Result.
func (l *Loader) Inspect(ctx context.Context) (res Result) {
	mode := l.resolver.Mode()
	res = Result{
		Mode:       mode,
		Candidates: Candidates(mode),
		Status:     StatusNotFound,
		Vars:       map[string]string{},
	}
	defer l.recoverInto(&res)

	var files []string
	if l.merge {
		files = l.resolver.ResolveAll(ctx)
	} else if name, ok := l.resolver.Resolve(ctx); ok {
		files = []string{name}
	}

	if len(files) == 0 {
		l.logger.Info("no env file found",
			zap.String("mode", string(mode)),
			zap.Strings("candidates", res.Candidates),
		)
		return res
	}

	// ResolveAll is highest priority first; apply lowest first so the most
	// specific file wins.
	slices.Reverse(files)
	l.read(ctx, &res, files)
	return res
}

// InspectFile behaves like LoadFile and returns the full Result.
func (l *Loader) InspectFile(ctx context.Context, name string) (res Result) {
	res = Result{
		Mode:   l.resolver.Mode(),
		Status: StatusNotFound,
		Vars:   map[string]string{},
	}
	defer l.recoverInto(&res)

	l.read(ctx, &res, []string{name})
	return res
}

func (l *Loader) read(ctx context.Context, res *Result, files []string) {
	res.Files = files

	var errs []error
	loaded := 0
	for _, name := range files {
		contents, err := l.files.ReadFile(ctx, name)
		if err != nil {
			l.logger.Error("failed to load env file",
				zap.String("file", name),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrReadFailed, name, err))
			continue
		}

		vars := Parse(contents)
		for k, v := range vars {
			res.Vars[k] = v
		}
		loaded++
		l.logger.Info("env file loaded",
			zap.String("mode", string(res.Mode)),
			zap.String("file", name),
			zap.Int("keys", len(vars)),
		)
	}

	res.Err = errors.Join(errs...)
	if loaded > 0 {
		res.Status = StatusLoaded
	} else {
		res.Status = StatusReadFailed
	}
}

// recoverInto turns a panic raised by the file store into a failed result.
func (l *Loader) recoverInto(res *Result) {
	rec := recover()
	if rec == nil {
		return
	}
	l.logger.Error("panic recovered while loading env file",
		zap.Strings("files", res.Files),
		zap.Any("error", rec),
	)
	res.Status = StatusReadFailed
	res.Err = fmt.Errorf("%w: %v", ErrPanic, rec)
	res.Vars = map[string]string{}
}

// LoadEnv resolves and loads the env file for the process environment from
// the working directory.
func LoadEnv(ctx context.Context, opts ...Option) map[string]string {
	return NewLoader(filestore.OS{}, environ.OS{}, opts...).Load(ctx)
}
