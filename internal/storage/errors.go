package storage

import "errors"

var (
	// ErrNotExist is returned by Remove when the image is already gone.
	ErrNotExist = errors.New("image does not exist")

	// ErrUnknownBackend is returned by New for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")

	// ErrInvalidName is returned for empty names or names that try to leave their directory.
	ErrInvalidName = errors.New("invalid image name")
)
