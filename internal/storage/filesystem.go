package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem stores images below a root directory.
type FileSystem struct {
	root string
}

// NewFileSystem creates a file system store rooted at root.
func NewFileSystem(root string) *FileSystem {
	return &FileSystem{root: root}
}

// Root returns the directory images are written to.
func (f *FileSystem) Root() string {
	return f.root
}

// Save writes r to root/dir/name.
func (f *FileSystem) Save(_ context.Context, dir, name string, r io.Reader) error {
	if err := checkName(name); err != nil {
		return err
	}

	target := filepath.Join(f.root, dir)
	if err := os.MkdirAll(target, 0o750); err != nil {
		return fmt.Errorf("failed to create image directory: %w", err)
	}

	file, err := os.Create(filepath.Join(target, name))
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}

	if _, err = io.Copy(file, r); err != nil {
		_ = file.Close()

		return fmt.Errorf("failed to write image: %w", err)
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("failed to close image: %w", err)
	}

	return nil
}

// Remove deletes root/dir/name.
func (f *FileSystem) Remove(_ context.Context, dir, name string) error {
	if err := checkName(name); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(f.root, dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotExist
	}

	if err != nil {
		return fmt.Errorf("failed to remove image: %w", err)
	}

	return nil
}
