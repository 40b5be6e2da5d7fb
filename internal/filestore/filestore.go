// Package filestore provides the file existence and read primitives used to
// resolve and load env files.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store checks for and reads named files.
type Store interface {
	Exists(ctx context.Context, name string) (bool, error)
	ReadFile(ctx context.Context, name string) (string, error)
}

// OS serves files from the local filesystem. Relative names are joined to
// Root; an empty Root means the working directory.
type OS struct {
	Root string
}

// Exists reports whether name exists. A missing file is not an error.
func (s OS) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	info, err := os.Stat(s.path(name))
	switch {
	case err == nil:
		return !info.IsDir(), nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat %s: %w", name, err)
	}
}

// ReadFile returns the full contents of name.
func (s OS) ReadFile(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}

func (s OS) path(name string) string {
	if s.Root == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.Root, name)
}
