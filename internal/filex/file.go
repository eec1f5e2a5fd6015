// Package filex holds file-system helpers for the local book cache:
// directory setup, atomic writes, staging files and transfer progress.
package filex

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EnsureDir creates dir (relative paths are resolved against the working
// directory) and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	if path == "" {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// WriteAtomic streams r into path. Data goes to a temporary file in the same
// directory which is renamed over path only after a complete copy; on any
// failure the temporary file is removed and path is left untouched.
func WriteAtomic(ctx context.Context, path string, r io.Reader) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".part-*")
	if err != nil {
		return 0, fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()

	n, err := io.Copy(tmp, &ctxReader{ctx: ctx, r: r})
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return 0, err
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return 0, fmt.Errorf("rename: %w", err)
	}
	return n, nil
}

// Stage copies r into a new temporary file inside dir and rewinds it.
// The caller owns the returned file and must call the cleanup function,
// which closes and removes it.
func Stage(ctx context.Context, dir, pattern string, r io.Reader) (*os.File, int64, func(), error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, 0, nil, fmt.Errorf("create staging file: %w", err)
	}
	cleanup := func() {
		_ = f.Close()
		_ = os.Remove(f.Name())
	}

	n, err := io.Copy(f, &ctxReader{ctx: ctx, r: r})
	if err != nil {
		cleanup()
		return nil, 0, nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		cleanup()
		return nil, 0, nil, err
	}
	return f, n, cleanup, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
