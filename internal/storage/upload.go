// Package storage holds uploaded files on local disk for the duration of one request.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
)

// Store creates request-scoped temporary files inside one directory
type Store struct {
	dir string
}

// NewStore creates the upload directory if needed
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the upload directory
func (s *Store) Dir() string {
	return s.dir
}

// Save copies r into a new file named with a generated ULID and ext.
// The client-supplied filename never reaches the filesystem.
// Callers must Release the returned file.
func (s *Store) Save(r io.Reader, ext string) (*TempFile, error) {
	ext = strings.ToLower(filepath.Ext("x" + ext))
	path := filepath.Join(s.dir, ulid.Make().String()+ext)

	dst, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}

	tmp := &TempFile{path: path}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		tmp.Release()
		return nil, fmt.Errorf("failed to write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		tmp.Release()
		return nil, fmt.Errorf("failed to close upload file: %w", err)
	}

	return tmp, nil
}

// TempFile is an uploaded file that is deleted on Release
type TempFile struct {
	path string
	once sync.Once
	err  error
}

// Path returns the location of the file on disk
func (f *TempFile) Path() string {
	return f.path
}

// Release deletes the file. It is safe to call more than once.
func (f *TempFile) Release() error {
	f.once.Do(func() {
		if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			f.err = err
		}
	})
	return f.err
}
