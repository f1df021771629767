package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ajadmin/ajadmin/internal/config"
)

// Image directories.
const (
	DirApplication = "applicationImages"
	DirProduct     = "productImages"
	DirBlog        = "blogImages"
)

const (
	backendFileSystem = "filesystem"
	backendS3         = "s3"
)

// Store saves and removes images.
type Store interface {
	Save(ctx context.Context, dir, name string, r io.Reader) error
	Remove(ctx context.Context, dir, name string) error
}

// New creates the store selected by cfg.Backend.
func New(ctx context.Context, cfg config.Storage) (Store, error) {
	switch cfg.Backend {
	case backendFileSystem, "":
		return NewFileSystem(cfg.Path), nil
	case backendS3:
		return NewS3(ctx, cfg.S3)
	default:
		return nil, ErrUnknownBackend
	}
}

// FileName returns the stored name of an upload: "<unix millis>-<base name>".
func FileName(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" {
		base = "image"
	}

	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + base
}

// Unlink removes names from dir and never fails. Empty names are skipped
// and path components are stripped. Missing images are ignored.
func Unlink(ctx context.Context, store Store, dir string, names ...string) {
	if store == nil {
		return
	}

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		name = filepath.Base(name)

		err := store.Remove(ctx, dir, name)
		switch {
		case err == nil:
			log.Debug().Str("dir", dir).Str("name", name).Msg("Image removed")
		case errors.Is(err, ErrNotExist):
			log.Debug().Str("dir", dir).Str("name", name).Msg("Image already gone")
		default:
			log.Error().Err(err).Str("dir", dir).Str("name", name).Msg("Failed to remove image")
		}
	}
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, "/\\") {
		return ErrInvalidName
	}

	return nil
}
