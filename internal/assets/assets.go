// Package assets locates and reads files used to build render resources: shader sources
// and raster images.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileError reports a file that could not be found or read. Path is the path as requested.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("assets: read %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// DecodeError reports a file that was read but is not a decodable image.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("assets: decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Resolver maps relative asset paths to files. A relative path is tried as given (against
// the working directory) and then under each of Dirs in order. Absolute paths are used as-is.
// The zero value only tries the path as given.
type Resolver struct {
	Dirs []string
}

// NewResolver returns a resolver searching dirs after the working directory.
func NewResolver(dirs ...string) *Resolver {
	return &Resolver{Dirs: dirs}
}

// Resolve returns the first existing file for path. The error is a *FileError wrapping
// fs.ErrNotExist when no candidate exists.
func (r *Resolver) Resolve(path string) (string, error) {
	if path == "" {
		return "", &FileError{Path: path, Err: errors.New("empty path")}
	}
	candidates := []string{path}
	if r != nil && !filepath.IsAbs(path) {
		for _, dir := range r.Dirs {
			candidates = append(candidates, filepath.Join(dir, path))
		}
	}
	for _, c := range candidates {
		info, err := os.Stat(c)
		if err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", &FileError{Path: path, Err: fs.ErrNotExist}
}

// ReadFile resolves path and returns its contents.
func (r *Resolver) ReadFile(path string) ([]byte, error) {
	full, err := r.Resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	return data, nil
}

// ReadText resolves path and returns its contents as a string.
func (r *Resolver) ReadText(path string) (string, error) {
	data, err := r.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
